package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/url"
)

// Create POSTs a JSON body to the resource collection and invalidates its
// tag on success.
func (c *Client) Create(ctx context.Context, res Resource, body any) (json.RawMessage, error) {
	out, err := c.sendJSON(ctx, http.MethodPost, res.Path, body)
	if err != nil {
		return nil, err
	}
	c.cache.invalidate(res.Tag)
	return unwrapData(out), nil
}

// Update PATCHes a JSON body to the record and invalidates the resource tag.
func (c *Client) Update(ctx context.Context, res Resource, id string, body any) (json.RawMessage, error) {
	out, err := c.sendJSON(ctx, http.MethodPatch, res.Path+"/"+url.PathEscape(id), body)
	if err != nil {
		return nil, err
	}
	c.cache.invalidate(res.Tag)
	return unwrapData(out), nil
}

// Delete removes the record and invalidates the resource tag.
func (c *Client) Delete(ctx context.Context, res Resource, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, res.Path+"/"+url.PathEscape(id), nil, nil, "")
	if err != nil {
		return err
	}
	if _, err := c.do(req); err != nil {
		return err
	}
	c.cache.invalidate(res.Tag)
	return nil
}

// CreateMultipart submits scalar fields plus an optional image as
// multipart/form-data, the body shape used whenever an image file is
// attached. Only the original file bytes are sent; previews stay local.
func (c *Client) CreateMultipart(ctx context.Context, res Resource, fields map[string]string, img *ImageFile) (json.RawMessage, error) {
	return c.sendMultipart(ctx, http.MethodPost, res, res.Path, fields, img)
}

// UpdateMultipart is CreateMultipart for an existing record.
func (c *Client) UpdateMultipart(ctx context.Context, res Resource, id string, fields map[string]string, img *ImageFile) (json.RawMessage, error) {
	return c.sendMultipart(ctx, http.MethodPatch, res, res.Path+"/"+url.PathEscape(id), fields, img)
}

func (c *Client) sendMultipart(ctx context.Context, method string, res Resource, path string, fields map[string]string, img *ImageFile) (json.RawMessage, error) {
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if img != nil {
		part, err := w.CreateFormFile("image", img.Name)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, method, path, nil, buf, w.FormDataContentType())
	if err != nil {
		return nil, err
	}
	out, err := c.do(req)
	if err != nil {
		return nil, err
	}
	c.cache.invalidate(res.Tag)
	return unwrapData(out), nil
}

func unwrapData(body []byte) json.RawMessage {
	var env detailEnvelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 {
		return env.Data
	}
	return body
}
