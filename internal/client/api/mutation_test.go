package api

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onepercent/internal/shared/models"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestCreateInvalidatesTag(t *testing.T) {
	var listHits int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet:
			listHits++
			fmt.Fprint(w, `{"success":true,"data":[],"pagination":{"total":0,"page":1,"limit":10}}`)
		case r.Method == http.MethodPost:
			fmt.Fprint(w, `{"success":true,"data":{"_id":"b1","title":"Focus"}}`)
		}
	}))
	defer ts.Close()

	c := New(ts.URL, StaticToken("tok"))
	p := ListParams{Page: 1, Limit: 10}
	_, err := List[models.Plan](context.Background(), c, BusinessPlans, p)
	require.NoError(t, err)
	_, err = List[models.Plan](context.Background(), c, BusinessPlans, p)
	require.NoError(t, err)
	require.Equal(t, 1, listHits)

	raw, err := c.Create(context.Background(), BusinessPlans, map[string]string{"title": "Focus", "description": "<p>x</p>"})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"b1"`)

	_, err = List[models.Plan](context.Background(), c, BusinessPlans, p)
	require.NoError(t, err)
	assert.Equal(t, 2, listHits, "create must invalidate the list cache")
}

func TestUpdateMultipartSendsImageAndFields(t *testing.T) {
	var gotName, gotCategory string
	var gotImage []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/meal/m1", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(10<<20))
		gotName = r.FormValue("name")
		gotCategory = r.FormValue("mealCategory")
		file, _, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(file)
		gotImage = buf.Bytes()
		fmt.Fprint(w, `{"success":true,"data":{"_id":"m1"}}`)
	}))
	defer ts.Close()

	img, err := NewImage("oats.png", pngBytes(t))
	require.NoError(t, err)

	c := New(ts.URL, StaticToken("tok"))
	_, err = c.UpdateMultipart(context.Background(), Meals, "m1",
		map[string]string{"name": "Oats", "mealCategory": "c1"}, img)
	require.NoError(t, err)
	assert.Equal(t, "Oats", gotName)
	assert.Equal(t, "c1", gotCategory)
	assert.Equal(t, img.Data, gotImage)
}

func TestUpdateMultipartWithoutNewFile(t *testing.T) {
	// Edit mode with a pre-existing image reference: no file part is sent.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(10<<20))
		_, _, err := r.FormFile("image")
		assert.Error(t, err, "no image part expected")
		assert.Equal(t, "Oats", r.FormValue("name"))
		fmt.Fprint(w, `{"success":true,"data":{"_id":"m1"}}`)
	}))
	defer ts.Close()

	c := New(ts.URL, StaticToken("tok"))
	_, err := c.UpdateMultipart(context.Background(), Meals, "m1", map[string]string{"name": "Oats", "mealCategory": "c1"}, nil)
	require.NoError(t, err)
}

func TestDelete(t *testing.T) {
	var path, method string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path, method = r.URL.Path, r.Method
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"success":true,"message":"deleted"}`)
	}))
	defer ts.Close()

	c := New(ts.URL, StaticToken("tok"))
	require.NoError(t, c.Delete(context.Background(), Preferences, "p9"))
	assert.Equal(t, "/preference/p9", path)
	assert.Equal(t, http.MethodDelete, method)
}

func TestFieldErrorMapping(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"success":false,"message":"Validation Error","errorMessages":[{"path":"image","message":"Image is required."}]}`)
	}))
	defer ts.Close()

	c := New(ts.URL, StaticToken("tok"))
	_, err := c.Create(context.Background(), GymPlans, map[string]string{"title": "Push day"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	msg, ok := apiErr.FieldMessage("image")
	require.True(t, ok)
	assert.Equal(t, "Image is required.", msg)
}
