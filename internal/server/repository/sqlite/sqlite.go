package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"onepercent/internal/server/repository"
	"onepercent/internal/shared/models"
)

type Repository struct {
	db *sql.DB
}

func New(dsn string) (*Repository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash BLOB NOT NULL,
			role TEXT NOT NULL,
			status TEXT NOT NULL,
			image TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);
		CREATE TABLE IF NOT EXISTS otps (
			email TEXT PRIMARY KEY,
			code TEXT NOT NULL,
			expires_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL
		);
		CREATE TABLE IF NOT EXISTS preferences (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			active INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);
		CREATE TABLE IF NOT EXISTS plans (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			image TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meal_categories (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meals (
			id TEXT PRIMARY KEY,
			category_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			FOREIGN KEY(category_id) REFERENCES meal_categories(id)
		);
		CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			price TEXT NOT NULL,
			currency TEXT NOT NULL,
			total_items INTEGER NOT NULL,
			po_number TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		);
		CREATE TABLE IF NOT EXISTS order_items (
			order_id TEXT NOT NULL,
			product_id TEXT NOT NULL,
			product_handle TEXT NOT NULL DEFAULT '',
			product_image TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			price TEXT NOT NULL,
			FOREIGN KEY(order_id) REFERENCES orders(id)
		);
		CREATE TABLE IF NOT EXISTS notifications (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			read INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		);
	`); err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error { return r.db.Close() }

// likePattern wraps a search term for a LIKE match. An empty term matches
// everything so list queries can use a single statement.
func likePattern(term string) string {
	if term == "" {
		return "%"
	}
	return "%" + term + "%"
}

func pageOffset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}

// Users

func (r *Repository) CreateUser(ctx context.Context, name, email string, passwordHash []byte, role string) (models.User, error) {
	now := time.Now().UTC()
	u := models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Role:      role,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users(id,name,email,password_hash,role,status,image,created_at,updated_at) VALUES(?,?,?,?,?,?,'',?,?)`,
		u.ID, u.Name, u.Email, passwordHash, u.Role, u.Status, now, now)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (models.User, []byte, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id,name,email,password_hash,role,status,image,created_at,updated_at FROM users WHERE email = ?`, email)
	return scanUserWithHash(row)
}

func (r *Repository) GetUserByID(ctx context.Context, id string) (models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id,name,email,password_hash,role,status,image,created_at,updated_at FROM users WHERE id = ?`, id)
	u, _, err := scanUserWithHash(row)
	return u, err
}

func scanUserWithHash(row *sql.Row) (models.User, []byte, error) {
	var u models.User
	var hash []byte
	err := row.Scan(&u.ID, &u.Name, &u.Email, &hash, &u.Role, &u.Status, &u.Image, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, nil, repository.ErrNotFound
	}
	if err != nil {
		return models.User{}, nil, err
	}
	return u, hash, nil
}

func (r *Repository) ListUsers(ctx context.Context, search string, page, limit int) ([]models.User, int, error) {
	pattern := likePattern(search)
	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE role = 'USER' AND status != 'delete' AND (name LIKE ? OR email LIKE ?)`,
		pattern, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id,name,email,role,status,image,created_at,updated_at FROM users
		 WHERE role = 'USER' AND status != 'delete' AND (name LIKE ? OR email LIKE ?)
		 ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		pattern, pattern, limit, pageOffset(page, limit))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Status, &u.Image, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

// ToggleUserStatus flips active <-> blocked and returns the new status.
// Soft-deleted accounts are treated as gone and cannot be resurrected.
func (r *Repository) ToggleUserStatus(ctx context.Context, id string) (string, error) {
	var status string
	err := r.db.QueryRowContext(ctx, `SELECT status FROM users WHERE id = ?`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if status == "delete" {
		return "", repository.ErrNotFound
	}
	next := "blocked"
	if status == "blocked" {
		next = "active"
	}
	_, err = r.db.ExecContext(ctx, `UPDATE users SET status = ?, updated_at = ? WHERE id = ?`, next, time.Now().UTC(), id)
	return next, err
}

// UpdateUserProfile overwrites the given fields; empty strings leave the
// stored value untouched.
func (r *Repository) UpdateUserProfile(ctx context.Context, id, name, image string) (models.User, error) {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET
			name = CASE WHEN ? != '' THEN ? ELSE name END,
			image = CASE WHEN ? != '' THEN ? ELSE image END,
			updated_at = ?
		WHERE id = ?`,
		name, name, image, image, time.Now().UTC(), id)
	if err != nil {
		return models.User{}, err
	}
	return r.GetUserByID(ctx, id)
}

func (r *Repository) UpdateUserPassword(ctx context.Context, email string, passwordHash []byte) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = ?, updated_at = ? WHERE email = ?`,
		passwordHash, time.Now().UTC(), email)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// MarkUserDeleted soft-deletes the account; the row stays for order history.
func (r *Repository) MarkUserDeleted(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET status = 'delete', updated_at = ? WHERE id = ?`, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Statistics

func (r *Repository) Statistics(ctx context.Context) (models.Statistics, error) {
	var s models.Statistics
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users WHERE role = 'USER' AND status != 'delete'),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM meals),
			(SELECT COUNT(*) FROM notifications)
	`).Scan(&s.TotalUser, &s.TotalOrder, &s.TotalMeal, &s.TotalNotification)
	return s, err
}

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthlyEarnings sums order totals per calendar month of the given year.
// Bucketing happens in Go; SQLite date functions do not understand the
// driver's timestamp encoding. All twelve months are present, zero-filled.
func (r *Repository) MonthlyEarnings(ctx context.Context, year int) ([]models.MonthlyEarning, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT created_at, price FROM orders`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]models.MonthlyEarning, 12)
	for i := range out {
		out[i].Month = monthNames[i]
	}
	for rows.Next() {
		var at time.Time
		var price string
		if err := rows.Scan(&at, &price); err != nil {
			return nil, err
		}
		if at.UTC().Year() != year {
			continue
		}
		amount, err := strconv.ParseFloat(price, 64)
		if err != nil {
			continue
		}
		out[int(at.UTC().Month())-1].Earning += amount
	}
	return out, rows.Err()
}

// MonthlySignups counts user registrations per calendar month of the year.
func (r *Repository) MonthlySignups(ctx context.Context, year int) ([]models.MonthlyUsers, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT created_at FROM users WHERE role = 'USER'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]models.MonthlyUsers, 12)
	for i := range out {
		out[i].Month = monthNames[i]
	}
	for rows.Next() {
		var at time.Time
		if err := rows.Scan(&at); err != nil {
			return nil, err
		}
		if at.UTC().Year() != year {
			continue
		}
		out[int(at.UTC().Month())-1].Value++
	}
	return out, rows.Err()
}

// OTP codes

func (r *Repository) SaveOTP(ctx context.Context, email, code string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO otps(email, code, expires_at, created_at) VALUES(?,?,?,?)
		ON CONFLICT(email) DO UPDATE SET code=excluded.code, expires_at=excluded.expires_at, created_at=excluded.created_at`,
		email, code, expiresAt, time.Now().UTC())
	return err
}

func (r *Repository) GetOTP(ctx context.Context, email string) (code string, expiresAt time.Time, err error) {
	row := r.db.QueryRowContext(ctx, `SELECT code, expires_at FROM otps WHERE email = ?`, email)
	err = row.Scan(&code, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		err = repository.ErrNotFound
	}
	return
}

// GetOTPByCode resolves a code back to the email it was issued for; the
// reset payload carries only the code.
func (r *Repository) GetOTPByCode(ctx context.Context, code string) (email string, expiresAt time.Time, err error) {
	row := r.db.QueryRowContext(ctx, `SELECT email, expires_at FROM otps WHERE code = ?`, code)
	err = row.Scan(&email, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		err = repository.ErrNotFound
	}
	return
}

func (r *Repository) DeleteOTP(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM otps WHERE email = ?`, email)
	return err
}

// Preferences

func (r *Repository) ListPreferences(ctx context.Context, search string, page, limit int) ([]models.Preference, int, error) {
	pattern := likePattern(search)
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM preferences WHERE name LIKE ?`, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id,name,active,created_at,updated_at FROM preferences WHERE name LIKE ?
		 ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		pattern, limit, pageOffset(page, limit))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []models.Preference
	for rows.Next() {
		var p models.Preference
		if err := rows.Scan(&p.ID, &p.Name, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *Repository) GetPreference(ctx context.Context, id string) (models.Preference, error) {
	var p models.Preference
	err := r.db.QueryRowContext(ctx,
		`SELECT id,name,active,created_at,updated_at FROM preferences WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Preference{}, repository.ErrNotFound
	}
	return p, err
}

func (r *Repository) CreatePreference(ctx context.Context, name string, active bool) (models.Preference, error) {
	now := time.Now().UTC()
	p := models.Preference{ID: uuid.NewString(), Name: name, Active: active, CreatedAt: now, UpdatedAt: now}
	_, err := r.db.ExecContext(ctx, `INSERT INTO preferences(id,name,active,created_at,updated_at) VALUES(?,?,?,?,?)`,
		p.ID, p.Name, p.Active, now, now)
	if err != nil {
		return models.Preference{}, err
	}
	return p, nil
}

func (r *Repository) UpdatePreference(ctx context.Context, id, name string, active bool) (models.Preference, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE preferences SET name = ?, active = ?, updated_at = ? WHERE id = ?`,
		name, active, time.Now().UTC(), id)
	if err != nil {
		return models.Preference{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Preference{}, repository.ErrNotFound
	}
	return r.GetPreference(ctx, id)
}

func (r *Repository) DeletePreference(ctx context.Context, id string) error {
	return r.deleteRow(ctx, `DELETE FROM preferences WHERE id = ?`, id)
}

// Plans. Kind distinguishes the gym-and-fitness and business-and-mindset
// collections, which share a table.

func (r *Repository) ListPlans(ctx context.Context, kind, search string, page, limit int) ([]models.Plan, int, error) {
	pattern := likePattern(search)
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM plans WHERE kind = ? AND title LIKE ?`, kind, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id,title,description,image,created_at,updated_at FROM plans WHERE kind = ? AND title LIKE ?
		 ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		kind, pattern, limit, pageOffset(page, limit))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []models.Plan
	for rows.Next() {
		var p models.Plan
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Image, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *Repository) GetPlan(ctx context.Context, kind, id string) (models.Plan, error) {
	var p models.Plan
	err := r.db.QueryRowContext(ctx,
		`SELECT id,title,description,image,created_at,updated_at FROM plans WHERE kind = ? AND id = ?`, kind, id).
		Scan(&p.ID, &p.Title, &p.Description, &p.Image, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Plan{}, repository.ErrNotFound
	}
	return p, err
}

func (r *Repository) CreatePlan(ctx context.Context, kind, title, description, image string) (models.Plan, error) {
	now := time.Now().UTC()
	p := models.Plan{ID: uuid.NewString(), Title: title, Description: description, Image: image, CreatedAt: now, UpdatedAt: now}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO plans(id,kind,title,description,image,created_at,updated_at) VALUES(?,?,?,?,?,?,?)`,
		p.ID, kind, p.Title, p.Description, p.Image, now, now)
	if err != nil {
		return models.Plan{}, err
	}
	return p, nil
}

// UpdatePlan overwrites non-empty fields only; a create-or-replace is not
// wanted here because edits may omit the image.
func (r *Repository) UpdatePlan(ctx context.Context, kind, id, title, description, image string) (models.Plan, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE plans SET
			title = CASE WHEN ? != '' THEN ? ELSE title END,
			description = CASE WHEN ? != '' THEN ? ELSE description END,
			image = CASE WHEN ? != '' THEN ? ELSE image END,
			updated_at = ?
		WHERE kind = ? AND id = ?`,
		title, title, description, description, image, image, time.Now().UTC(), kind, id)
	if err != nil {
		return models.Plan{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Plan{}, repository.ErrNotFound
	}
	return r.GetPlan(ctx, kind, id)
}

func (r *Repository) DeletePlan(ctx context.Context, kind, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE kind = ? AND id = ?`, kind, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Meal categories

func (r *Repository) ListMealCategories(ctx context.Context, search string, page, limit int) ([]models.MealCategory, int, error) {
	pattern := likePattern(search)
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM meal_categories WHERE title LIKE ?`, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id,title,created_at,updated_at FROM meal_categories WHERE title LIKE ?
		 ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		pattern, limit, pageOffset(page, limit))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []models.MealCategory
	for rows.Next() {
		var c models.MealCategory
		if err := rows.Scan(&c.ID, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (r *Repository) GetMealCategory(ctx context.Context, id string) (models.MealCategory, error) {
	var c models.MealCategory
	err := r.db.QueryRowContext(ctx,
		`SELECT id,title,created_at,updated_at FROM meal_categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Title, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.MealCategory{}, repository.ErrNotFound
	}
	return c, err
}

func (r *Repository) CreateMealCategory(ctx context.Context, title string) (models.MealCategory, error) {
	now := time.Now().UTC()
	c := models.MealCategory{ID: uuid.NewString(), Title: title, CreatedAt: now, UpdatedAt: now}
	_, err := r.db.ExecContext(ctx, `INSERT INTO meal_categories(id,title,created_at,updated_at) VALUES(?,?,?,?)`,
		c.ID, c.Title, now, now)
	if err != nil {
		return models.MealCategory{}, err
	}
	return c, nil
}

func (r *Repository) UpdateMealCategory(ctx context.Context, id, title string) (models.MealCategory, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE meal_categories SET title = ?, updated_at = ? WHERE id = ?`,
		title, time.Now().UTC(), id)
	if err != nil {
		return models.MealCategory{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.MealCategory{}, repository.ErrNotFound
	}
	return r.GetMealCategory(ctx, id)
}

func (r *Repository) DeleteMealCategory(ctx context.Context, id string) error {
	return r.deleteRow(ctx, `DELETE FROM meal_categories WHERE id = ?`, id)
}

// Meals. Reads join the category so responses carry the embedded
// {_id, title} form.

func (r *Repository) ListMeals(ctx context.Context, search string, page, limit int) ([]models.Meal, int, error) {
	pattern := likePattern(search)
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM meals WHERE name LIKE ?`, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.name, m.description, m.image, m.created_at, m.updated_at, c.id, c.title
		FROM meals m JOIN meal_categories c ON c.id = m.category_id
		WHERE m.name LIKE ?
		ORDER BY m.created_at DESC LIMIT ? OFFSET ?`,
		pattern, limit, pageOffset(page, limit))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []models.Meal
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

func (r *Repository) GetMeal(ctx context.Context, id string) (models.Meal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT m.id, m.name, m.description, m.image, m.created_at, m.updated_at, c.id, c.title
		FROM meals m JOIN meal_categories c ON c.id = m.category_id
		WHERE m.id = ?`, id)
	m, err := scanMeal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Meal{}, repository.ErrNotFound
	}
	return m, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeal(row rowScanner) (models.Meal, error) {
	var m models.Meal
	var catID, catTitle string
	if err := row.Scan(&m.ID, &m.Name, &m.Description, &m.Image, &m.CreatedAt, &m.UpdatedAt, &catID, &catTitle); err != nil {
		return models.Meal{}, err
	}
	m.Category = models.EmbeddedCategory(catID, catTitle)
	return m, nil
}

func (r *Repository) CreateMeal(ctx context.Context, categoryID, name, description, image string) (models.Meal, error) {
	if _, err := r.GetMealCategory(ctx, categoryID); err != nil {
		return models.Meal{}, err
	}
	now := time.Now().UTC()
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO meals(id,category_id,name,description,image,created_at,updated_at) VALUES(?,?,?,?,?,?,?)`,
		id, categoryID, name, description, image, now, now)
	if err != nil {
		return models.Meal{}, err
	}
	return r.GetMeal(ctx, id)
}

func (r *Repository) UpdateMeal(ctx context.Context, id, categoryID, name, description, image string) (models.Meal, error) {
	if categoryID != "" {
		if _, err := r.GetMealCategory(ctx, categoryID); err != nil {
			return models.Meal{}, err
		}
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE meals SET
			category_id = CASE WHEN ? != '' THEN ? ELSE category_id END,
			name = CASE WHEN ? != '' THEN ? ELSE name END,
			description = CASE WHEN ? != '' THEN ? ELSE description END,
			image = CASE WHEN ? != '' THEN ? ELSE image END,
			updated_at = ?
		WHERE id = ?`,
		categoryID, categoryID, name, name, description, description, image, image, time.Now().UTC(), id)
	if err != nil {
		return models.Meal{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Meal{}, repository.ErrNotFound
	}
	return r.GetMeal(ctx, id)
}

func (r *Repository) DeleteMeal(ctx context.Context, id string) error {
	return r.deleteRow(ctx, `DELETE FROM meals WHERE id = ?`, id)
}

// Orders. The store collection is read-only here; rows arrive from the
// e-commerce sync.

func (r *Repository) InsertOrder(ctx context.Context, o models.Order, items []models.OrderLineItem) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO orders(id,name,email,price,currency,total_items,po_number,created_at) VALUES(?,?,?,?,?,?,?,?)`,
		o.ID, o.Name, o.Email, o.Price, o.Currency, o.TotalItems, o.PONumber, o.CreatedAt)
	if err != nil {
		return err
	}
	for _, it := range items {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO order_items(order_id,product_id,product_handle,product_image,title,quantity,price) VALUES(?,?,?,?,?,?,?)`,
			o.ID, it.ProductID, it.ProductHandle, it.ProductImage, it.Title, it.Quantity, it.Price); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) ListOrders(ctx context.Context, search string, page, limit int) ([]models.Order, int, error) {
	pattern := likePattern(search)
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE name LIKE ? OR email LIKE ?`, pattern, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id,name,email,price,currency,total_items,po_number,created_at FROM orders
		 WHERE name LIKE ? OR email LIKE ?
		 ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		pattern, pattern, limit, pageOffset(page, limit))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.Name, &o.Email, &o.Price, &o.Currency, &o.TotalItems, &o.PONumber, &o.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}

func (r *Repository) GetOrderDetails(ctx context.Context, id string) (models.OrderDetails, error) {
	var d models.OrderDetails
	err := r.db.QueryRowContext(ctx, `SELECT id,name,price,currency FROM orders WHERE id = ?`, id).
		Scan(&d.ID, &d.Name, &d.Amount, &d.Currency)
	if errors.Is(err, sql.ErrNoRows) {
		return models.OrderDetails{}, repository.ErrNotFound
	}
	if err != nil {
		return models.OrderDetails{}, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id,product_handle,product_image,title,quantity,price FROM order_items WHERE order_id = ?`, id)
	if err != nil {
		return models.OrderDetails{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var it models.OrderLineItem
		if err := rows.Scan(&it.ProductID, &it.ProductHandle, &it.ProductImage, &it.Title, &it.Quantity, &it.Price); err != nil {
			return models.OrderDetails{}, err
		}
		d.LineItems = append(d.LineItems, it)
	}
	return d, rows.Err()
}

// Notifications

func (r *Repository) ListNotifications(ctx context.Context, page, limit int) ([]models.Notification, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id,title,message,read,created_at FROM notifications
		 ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		limit, pageOffset(page, limit))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, n)
	}
	return out, total, rows.Err()
}

func (r *Repository) CreateNotification(ctx context.Context, title, message string) (models.Notification, error) {
	n := models.Notification{ID: uuid.NewString(), Title: title, Message: message, CreatedAt: time.Now().UTC()}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications(id,title,message,read,created_at) VALUES(?,?,?,0,?)`,
		n.ID, n.Title, n.Message, n.CreatedAt)
	if err != nil {
		return models.Notification{}, err
	}
	return n, nil
}

func (r *Repository) MarkNotificationRead(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *Repository) deleteRow(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
