package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/electronix/assistant/internal/config"
	"github.com/electronix/assistant/internal/core"
	"github.com/electronix/assistant/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(ctx context.Context, cfg *config.Config) (core.DbClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database client configuration is nil")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Sensible pool settings for an API service; adjust as needed.
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := EnsureBootstrapped(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (c *DatabaseClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// JSONB helpers: images, colors and order items live in jsonb columns.

func marshalStrings(v []string) []byte {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return b
}

func unmarshalStrings(raw []byte) []string {
	var out []string
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return out
}

// Users

func (c *DatabaseClient) CreateUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("nil user")
	}
	const q = `
		INSERT INTO users (id, name, email, password_hash, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, now()))
	`
	_, err := c.db.ExecContext(ctx, q,
		user.ID, user.Name, user.Email, user.PasswordHash, user.IsAdmin, user.CreatedAt)
	return err
}

func (c *DatabaseClient) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `
		SELECT id, name, email, password_hash, is_admin, created_at
		FROM users WHERE email = $1
	`
	return c.scanUser(c.db.QueryRowContext(ctx, q, email))
}

func (c *DatabaseClient) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	const q = `
		SELECT id, name, email, password_hash, is_admin, created_at
		FROM users WHERE id = $1
	`
	return c.scanUser(c.db.QueryRowContext(ctx, q, id))
}

func (c *DatabaseClient) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *DatabaseClient) GetCart(ctx context.Context, userID string) (models.Cart, error) {
	var raw []byte
	err := c.db.QueryRowContext(ctx, `SELECT cart FROM users WHERE id = $1`, userID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found: %s", userID)
	}
	if err != nil {
		return nil, err
	}

	cart := models.Cart{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &cart); err != nil {
			return nil, fmt.Errorf("decode cart: %w", err)
		}
	}
	return cart, nil
}

func (c *DatabaseClient) UpdateCart(ctx context.Context, userID string, cart models.Cart) error {
	if cart == nil {
		cart = models.Cart{}
	}
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}

	res, err := c.db.ExecContext(ctx, `UPDATE users SET cart = $2 WHERE id = $1`, userID, raw)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

// Products

func (c *DatabaseClient) CreateProduct(ctx context.Context, p *models.Product) error {
	if p == nil {
		return errors.New("nil product")
	}
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	const q = `
		INSERT INTO products (id, name, description, images, category, colors, available, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, now()))
	`
	if _, err := tx.ExecContext(ctx, q,
		p.ID, p.Name, p.Description, marshalStrings(p.Images), p.Category,
		marshalStrings(p.Colors), p.Available, p.CreatedAt); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := insertTiers(ctx, tx, p.ID, p.Tiers); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (c *DatabaseClient) UpdateProduct(ctx context.Context, p *models.Product) error {
	if p == nil {
		return errors.New("nil product")
	}
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	const q = `
		UPDATE products
		SET name = $2, description = $3, images = $4, category = $5, colors = $6
		WHERE id = $1
	`
	res, err := tx.ExecContext(ctx, q,
		p.ID, p.Name, p.Description, marshalStrings(p.Images), p.Category, marshalStrings(p.Colors))
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		_ = tx.Rollback()
		return fmt.Errorf("product not found: %s", p.ID)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM product_tiers WHERE product_id = $1`, p.ID); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := insertTiers(ctx, tx, p.ID, p.Tiers); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func insertTiers(ctx context.Context, tx *sql.Tx, productID string, tiers []models.PriceTier) error {
	const q = `
		INSERT INTO product_tiers (product_id, label, price, old_price)
		VALUES ($1, $2, $3, $4)
	`
	for _, t := range tiers {
		if _, err := tx.ExecContext(ctx, q, productID, t.Label, t.Price, t.OldPrice); err != nil {
			return err
		}
	}
	return nil
}

func (c *DatabaseClient) DeleteProduct(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("product not found: %s", id)
	}
	return nil
}

func (c *DatabaseClient) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	const q = `
		SELECT id, name, description, images, category, colors, available, created_at
		FROM products WHERE id = $1
	`
	rows, err := c.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	products, err := c.collectProducts(ctx, rows)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	return &products[0], nil
}

func (c *DatabaseClient) ListProducts(ctx context.Context, page, limit int) ([]models.Product, int, error) {
	return c.pagedProducts(ctx, `
		SELECT id, name, description, images, category, colors, available, created_at
		FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		`SELECT count(*) FROM products`, nil, page, limit)
}

func (c *DatabaseClient) ListProductsByCategory(ctx context.Context, category string, page, limit int) ([]models.Product, int, error) {
	return c.pagedProducts(ctx, `
		SELECT id, name, description, images, category, colors, available, created_at
		FROM products WHERE category = $3 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		`SELECT count(*) FROM products WHERE category = $1`, []any{category}, page, limit)
}

func (c *DatabaseClient) pagedProducts(ctx context.Context, listQ, countQ string, extra []any, page, limit int) ([]models.Product, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 12
	}
	offset := (page - 1) * limit

	args := append([]any{limit, offset}, extra...)
	rows, err := c.db.QueryContext(ctx, listQ, args...)
	if err != nil {
		return nil, 0, err
	}
	products, err := c.collectProducts(ctx, rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := c.db.QueryRowContext(ctx, countQ, extra...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// FindProducts translates the chat engine's filter into SQL. Keywords match
// name or description disjunctively; price bounds apply to any tier. An
// inverted price range simply matches no tier.
func (c *DatabaseClient) FindProducts(ctx context.Context, filter models.ProductFilter, limit int) ([]models.Product, error) {
	if limit < 1 {
		limit = 5
	}

	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`
		SELECT id, name, description, images, category, colors, available, created_at
		FROM products p WHERE 1=1`)

	if filter.AvailableOnly {
		sb.WriteString(` AND p.available`)
	}

	if len(filter.Categories) > 0 {
		placeholders := make([]string, len(filter.Categories))
		for i, cat := range filter.Categories {
			args = append(args, cat)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		sb.WriteString(` AND p.category IN (` + strings.Join(placeholders, ", ") + `)`)
	}

	if len(filter.Terms) > 0 {
		clauses := make([]string, len(filter.Terms))
		for i, term := range filter.Terms {
			args = append(args, "%"+term+"%")
			n := len(args)
			clauses[i] = fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", n, n)
		}
		sb.WriteString(` AND (` + strings.Join(clauses, " OR ") + `)`)
	}

	if filter.Price != nil {
		var bounds []string
		if filter.Price.Min != nil {
			args = append(args, *filter.Price.Min)
			bounds = append(bounds, fmt.Sprintf("t.price >= $%d", len(args)))
		}
		if filter.Price.Max != nil {
			args = append(args, *filter.Price.Max)
			bounds = append(bounds, fmt.Sprintf("t.price <= $%d", len(args)))
		}
		if len(bounds) > 0 {
			sb.WriteString(` AND EXISTS (SELECT 1 FROM product_tiers t WHERE t.product_id = p.id AND ` +
				strings.Join(bounds, " AND ") + `)`)
		}
	}

	args = append(args, limit)
	sb.WriteString(fmt.Sprintf(` ORDER BY p.created_at DESC LIMIT $%d`, len(args)))

	rows, err := c.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	return c.collectProducts(ctx, rows)
}

func (c *DatabaseClient) FindPopular(ctx context.Context, limit int) ([]models.Product, error) {
	if limit < 1 {
		limit = 3
	}
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, name, description, images, category, colors, available, created_at
		FROM products WHERE available ORDER BY created_at ASC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return c.collectProducts(ctx, rows)
}

func (c *DatabaseClient) FindNewArrivals(ctx context.Context, limit int) ([]models.Product, error) {
	if limit < 1 {
		limit = 8
	}
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, name, description, images, category, colors, available, created_at
		FROM products ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return c.collectProducts(ctx, rows)
}

func (c *DatabaseClient) SetProductAvailability(ctx context.Context, id string, available bool) error {
	res, err := c.db.ExecContext(ctx, `UPDATE products SET available = $2 WHERE id = $1`, id, available)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("product not found: %s", id)
	}
	return nil
}

func (c *DatabaseClient) collectProducts(ctx context.Context, rows *sql.Rows) ([]models.Product, error) {
	defer rows.Close()

	var out []models.Product
	for rows.Next() {
		var (
			p              models.Product
			images, colors []byte
		)
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &images, &p.Category, &colors, &p.Available, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		p.Images = unmarshalStrings(images)
		p.Colors = unmarshalStrings(colors)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		tiers, err := c.loadTiers(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Tiers = tiers
	}
	return out, nil
}

func (c *DatabaseClient) loadTiers(ctx context.Context, productID string) ([]models.PriceTier, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT label, price, old_price FROM product_tiers WHERE product_id = $1 ORDER BY price ASC`,
		productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.PriceTier
	for rows.Next() {
		var t models.PriceTier
		if err := rows.Scan(&t.Label, &t.Price, &t.OldPrice); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// FAQs

func (c *DatabaseClient) ListFaqs(ctx context.Context) ([]models.Faq, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, question, answer FROM faqs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Faq
	for rows.Next() {
		var f models.Faq
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (c *DatabaseClient) CreateFaq(ctx context.Context, faq *models.Faq) error {
	if faq == nil {
		return errors.New("nil faq")
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO faqs (id, question, answer) VALUES ($1, $2, $3)`,
		faq.ID, faq.Question, faq.Answer)
	return err
}

func (c *DatabaseClient) UpdateFaq(ctx context.Context, faq *models.Faq) error {
	if faq == nil {
		return errors.New("nil faq")
	}
	res, err := c.db.ExecContext(ctx,
		`UPDATE faqs SET question = $2, answer = $3 WHERE id = $1`,
		faq.ID, faq.Question, faq.Answer)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("faq not found: %s", faq.ID)
	}
	return nil
}

func (c *DatabaseClient) DeleteFaq(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("faq not found: %s", id)
	}
	return nil
}

// Social links

func (c *DatabaseClient) ListSocialLinks(ctx context.Context) ([]models.SocialLink, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, platform, url, icon FROM social_links ORDER BY platform`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SocialLink
	for rows.Next() {
		var l models.SocialLink
		if err := rows.Scan(&l.ID, &l.Platform, &l.URL, &l.Icon); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (c *DatabaseClient) UpsertSocialLink(ctx context.Context, link *models.SocialLink) error {
	if link == nil {
		return errors.New("nil social link")
	}
	const q = `
		INSERT INTO social_links (id, platform, url, icon)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (platform) DO UPDATE SET url = EXCLUDED.url, icon = EXCLUDED.icon
	`
	_, err := c.db.ExecContext(ctx, q, link.ID, link.Platform, link.URL, link.Icon)
	return err
}

func (c *DatabaseClient) DeleteSocialLink(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM social_links WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("social link not found: %s", id)
	}
	return nil
}

// Orders

func (c *DatabaseClient) CreateOrder(ctx context.Context, order *models.Order) error {
	if order == nil {
		return errors.New("nil order")
	}
	const q = `
		INSERT INTO orders (order_id, user_id, items, total, status, placed_at, updated_at, pay_method, address, phone, recipient)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, now()), COALESCE($7, now()), $8, $9, $10, $11)
	`
	_, err := c.db.ExecContext(ctx, q,
		order.OrderID, order.UserID, marshalStrings(order.Items), order.Total, order.Status,
		order.PlacedAt, order.UpdatedAt, order.PayMethod, order.Address, order.Phone, order.Recipient)
	return err
}

func (c *DatabaseClient) ListOrdersByUser(ctx context.Context, userID string, page, limit int) ([]models.Order, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	rows, err := c.db.QueryContext(ctx, `
		SELECT order_id, user_id, items, total, status, placed_at, updated_at, pay_method, address, phone, recipient
		FROM orders WHERE user_id = $1 ORDER BY placed_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	orders, err := collectOrders(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := c.db.QueryRowContext(ctx, `SELECT count(*) FROM orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (c *DatabaseClient) FindOrderByID(ctx context.Context, userID, orderID string) (*models.Order, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT order_id, user_id, items, total, status, placed_at, updated_at, pay_method, address, phone, recipient
		FROM orders WHERE user_id = $1 AND order_id = $2`,
		userID, orderID)
	if err != nil {
		return nil, err
	}
	orders, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}
	return &orders[0], nil
}

func (c *DatabaseClient) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT order_id, user_id, items, total, status, placed_at, updated_at, pay_method, address, phone, recipient
		FROM orders ORDER BY placed_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (c *DatabaseClient) UpdateOrderStatus(ctx context.Context, userID, orderID, status string) error {
	res, err := c.db.ExecContext(ctx, `
		UPDATE orders SET status = $3, updated_at = now() WHERE user_id = $1 AND order_id = $2`,
		userID, orderID, status)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("order not found: %s", orderID)
	}
	return nil
}

func collectOrders(rows *sql.Rows) ([]models.Order, error) {
	defer rows.Close()

	var out []models.Order
	for rows.Next() {
		var (
			o     models.Order
			items []byte
		)
		if err := rows.Scan(
			&o.OrderID, &o.UserID, &items, &o.Total, &o.Status, &o.PlacedAt, &o.UpdatedAt,
			&o.PayMethod, &o.Address, &o.Phone, &o.Recipient,
		); err != nil {
			return nil, err
		}
		o.Items = unmarshalStrings(items)
		out = append(out, o)
	}
	return out, rows.Err()
}

// Chat history

func (c *DatabaseClient) AppendExchange(ctx context.Context, exchange *models.ChatExchange) error {
	if exchange == nil {
		return errors.New("nil exchange")
	}
	const q = `
		INSERT INTO chat_messages (id, user_id, message, reply, timestamp)
		VALUES ($1, $2, $3, $4, COALESCE($5, now()))
	`
	_, err := c.db.ExecContext(ctx, q,
		exchange.ID, exchange.UserID, exchange.Message, exchange.Reply, exchange.Timestamp)
	return err
}

func (c *DatabaseClient) ListRecentExchanges(ctx context.Context, userID string, n int) ([]models.ChatExchange, error) {
	if n < 1 {
		n = 5
	}
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, user_id, message, reply, timestamp
		FROM chat_messages WHERE user_id = $1 ORDER BY timestamp DESC LIMIT $2`,
		userID, n)
	if err != nil {
		return nil, err
	}
	return collectExchanges(rows)
}

func (c *DatabaseClient) ListExchanges(ctx context.Context, userID string) ([]models.ChatExchange, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, user_id, message, reply, timestamp
		FROM chat_messages WHERE user_id = $1 ORDER BY timestamp ASC`,
		userID)
	if err != nil {
		return nil, err
	}
	return collectExchanges(rows)
}

func (c *DatabaseClient) DeleteExchange(ctx context.Context, userID, id string) error {
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM chat_messages WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("chat message not found: %s", id)
	}
	return nil
}

func (c *DatabaseClient) DeleteAllExchanges(ctx context.Context, userID string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM chat_messages WHERE user_id = $1`, userID)
	return err
}

func collectExchanges(rows *sql.Rows) ([]models.ChatExchange, error) {
	defer rows.Close()

	var out []models.ChatExchange
	for rows.Next() {
		var e models.ChatExchange
		if err := rows.Scan(&e.ID, &e.UserID, &e.Message, &e.Reply, &e.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
