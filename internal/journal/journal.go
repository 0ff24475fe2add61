//go:generate mockgen -source ./journal.go -destination=./mocks/journal.go -package=mocks
package journal

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/iurnickita/entitlementsupport/internal/journal/config"
	"github.com/iurnickita/entitlementsupport/internal/model"
)

// Journal records what support staff did to entitlements.
type Journal interface {
	Record(ctx context.Context, detail model.SupportDetail) error
	List(ctx context.Context, entitlementUUID string) ([]model.SupportDetail, error)
	Close() error
}

var ErrInsufficientData = errors.New("insufficient data")

// New opens the Postgres journal, or returns Nop when no DSN is configured.
func New(cfg config.Config) (Journal, error) {
	if cfg.DBDsn == "" {
		return Nop{}, nil
	}
	return NewPostgres(cfg)
}

type postgres struct {
	database *sql.DB
}

func NewPostgres(cfg config.Config) (Journal, error) {
	db, err := sql.Open("pgx", cfg.DBDsn)
	if err != nil {
		return nil, err
	}

	// Журнал действий поддержки.
	// Одна запись на каждое успешное создание или перевыпуск, записи не меняются
	_, err = db.Exec(
		"CREATE TABLE IF NOT EXISTS entitlement_support_detail (" +
			" id SERIAL PRIMARY KEY," +
			" entitlement_uuid VARCHAR (36) NOT NULL," +
			" action VARCHAR (15) NOT NULL," +
			" reason VARCHAR (15) NOT NULL," +
			" comments TEXT NOT NULL," +
			" support_user VARCHAR (150) NOT NULL," +
			" created TIMESTAMP NOT NULL" +
			" );")
	if err != nil {
		db.Close()
		return nil, err
	}

	return &postgres{
		database: db,
	}, nil
}

func (p *postgres) Record(ctx context.Context, detail model.SupportDetail) error {
	if detail.EntitlementUUID == "" || detail.Action == "" {
		return ErrInsufficientData
	}

	_, err := p.database.ExecContext(ctx,
		"INSERT INTO entitlement_support_detail (entitlement_uuid, action, reason, comments, support_user, created)"+
			" VALUES ($1, $2, $3, $4, $5, $6)",
		detail.EntitlementUUID,
		detail.Action,
		detail.Reason,
		detail.Comments,
		detail.SupportUser,
		detail.Created)
	return err
}

func (p *postgres) List(ctx context.Context, entitlementUUID string) ([]model.SupportDetail, error) {
	rows, err := p.database.QueryContext(ctx,
		"SELECT entitlement_uuid, action, reason, comments, support_user, created"+
			" FROM entitlement_support_detail"+
			" WHERE entitlement_uuid = $1"+
			" ORDER BY id",
		entitlementUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []model.SupportDetail
	for rows.Next() {
		var detail model.SupportDetail
		err := rows.Scan(&detail.EntitlementUUID,
			&detail.Action,
			&detail.Reason,
			&detail.Comments,
			&detail.SupportUser,
			&detail.Created)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}

	return details, rows.Err()
}

func (p *postgres) Close() error {
	return p.database.Close()
}

// Nop discards every record.
type Nop struct{}

func (Nop) Record(context.Context, model.SupportDetail) error { return nil }

func (Nop) List(context.Context, string) ([]model.SupportDetail, error) { return nil, nil }

func (Nop) Close() error { return nil }
