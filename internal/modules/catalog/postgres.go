package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, item *Item) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO catalog
		  (id, name, price, width, height, depth, archived, company_id, object_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		item.ID, item.Name, item.Price, item.Width, item.Height, item.Depth,
		item.Archived, item.CompanyID, item.ObjectID)
	if err != nil {
		return fmt.Errorf("insert catalog item: %w", err)
	}

	if err := insertTags(ctx, tx, item); err != nil {
		return err
	}
	return tx.Commit()
}

func insertTags(ctx context.Context, tx *sql.Tx, item *Item) error {
	for _, c := range item.Colors {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO catalog_colors (id, item_id, color, model_id)
			VALUES ($1,$2,$3,$4)`,
			c.ID, item.ID, c.Color, c.ModelID); err != nil {
			return fmt.Errorf("insert catalog_color: %w", err)
		}
	}
	for _, s := range item.Styles {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO catalog_styles (id, item_id, style)
			VALUES ($1,$2,$3)`,
			uuid.New(), item.ID, s); err != nil {
			return fmt.Errorf("insert catalog_style: %w", err)
		}
	}
	for _, room := range item.Rooms {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO catalog_rooms (id, item_id, room)
			VALUES ($1,$2,$3)`,
			uuid.New(), item.ID, room); err != nil {
			return fmt.Errorf("insert catalog_room: %w", err)
		}
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Item, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, sql.ErrNoRows
	}
	item, err := scanItem(r.db.QueryRowContext(ctx, `
		SELECT id, name, price, width, height, depth, archived, company_id, object_id, created_at, updated_at
		FROM catalog WHERE id=$1`, uid).Scan)
	if err != nil {
		return nil, err
	}
	if err := r.loadTags(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *postgresRepo) List(ctx context.Context, f Filter) ([]*Item, error) {
	query := `SELECT id, name, price, width, height, depth, archived, company_id, object_id, created_at, updated_at
	          FROM catalog WHERE 1=1`
	args := []interface{}{}
	n := 1
	arg := func(v interface{}) string {
		args = append(args, v)
		placeholder := fmt.Sprintf("$%d", n)
		n++
		return placeholder
	}

	if !f.IncludeArchived {
		query += ` AND archived=false`
	}
	if f.Name != "" {
		query += ` AND name ILIKE '%' || ` + arg(f.Name) + ` || '%'`
	}
	if f.Price != nil {
		query += ` AND price=` + arg(*f.Price)
	}
	if f.ObjectID != "" {
		query += ` AND object_id=` + arg(f.ObjectID)
	}
	if f.CompanyID != "" {
		query += ` AND company_id=` + arg(f.CompanyID)
	}
	if f.CompanyName != "" {
		query += ` AND EXISTS (SELECT 1 FROM companies co WHERE co.id=catalog.company_id AND co.name ILIKE '%' || ` + arg(f.CompanyName) + ` || '%')`
	}
	if len(f.Colors) > 0 {
		query += ` AND EXISTS (SELECT 1 FROM catalog_colors cc WHERE cc.item_id=catalog.id AND cc.color = ANY(` + arg(pq.Array(f.Colors)) + `))`
	}
	if f.ModelID != "" {
		query += ` AND EXISTS (SELECT 1 FROM catalog_colors cm WHERE cm.item_id=catalog.id AND cm.model_id=` + arg(f.ModelID) + `)`
	}
	if len(f.Styles) > 0 {
		query += ` AND EXISTS (SELECT 1 FROM catalog_styles cs WHERE cs.item_id=catalog.id AND cs.style = ANY(` + arg(pq.Array(f.Styles)) + `))`
	}
	if len(f.Rooms) > 0 {
		query += ` AND EXISTS (SELECT 1 FROM catalog_rooms cr WHERE cr.item_id=catalog.id AND cr.room = ANY(` + arg(pq.Array(f.Rooms)) + `))`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := r.loadTags(ctx, item); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (r *postgresRepo) Update(ctx context.Context, item *Item) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE catalog
		SET name=$1, price=$2, width=$3, height=$4, depth=$5,
		    company_id=$6, object_id=$7, updated_at=NOW()
		WHERE id=$8`,
		item.Name, item.Price, item.Width, item.Height, item.Depth,
		item.CompanyID, item.ObjectID, item.ID)
	if err != nil {
		return fmt.Errorf("update catalog item: %w", err)
	}

	// tag rows are replaced wholesale
	for _, table := range []string{"catalog_colors", "catalog_styles", "catalog_rooms"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE item_id=$1`, item.ID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if err := insertTags(ctx, tx, item); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresRepo) Archive(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return sql.ErrNoRows
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE catalog SET archived=true, updated_at=NOW() WHERE id=$1`, uid)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func scanItem(scan func(...interface{}) error) (*Item, error) {
	item := &Item{}
	var companyID sql.NullString
	err := scan(&item.ID, &item.Name, &item.Price, &item.Width, &item.Height,
		&item.Depth, &item.Archived, &companyID, &item.ObjectID,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if companyID.Valid {
		cid, _ := uuid.Parse(companyID.String)
		item.CompanyID = &cid
	}
	return item, nil
}

func (r *postgresRepo) loadTags(ctx context.Context, item *Item) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, item_id, color, model_id
		FROM catalog_colors WHERE item_id=$1 ORDER BY color ASC`, item.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		c := &Color{}
		var modelID sql.NullString
		if err := rows.Scan(&c.ID, &c.ItemID, &c.Color, &modelID); err != nil {
			return err
		}
		if modelID.Valid {
			c.ModelID = &modelID.String
		}
		item.Colors = append(item.Colors, c)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if item.Styles, err = r.listTagValues(ctx, `SELECT style FROM catalog_styles WHERE item_id=$1 ORDER BY style ASC`, item.ID); err != nil {
		return err
	}
	if item.Rooms, err = r.listTagValues(ctx, `SELECT room FROM catalog_rooms WHERE item_id=$1 ORDER BY room ASC`, item.ID); err != nil {
		return err
	}
	return nil
}

func (r *postgresRepo) listTagValues(ctx context.Context, query string, itemID uuid.UUID) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
