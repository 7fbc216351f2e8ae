package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"paywall/contexts/finance-core/paywall-ledger/domain/entities"
	domainerrors "paywall/contexts/finance-core/paywall-ledger/domain/errors"
	"paywall/contexts/finance-core/paywall-ledger/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending = "pending"
	outboxStatusSent    = "sent"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Migrate creates or upgrades the ledger tables.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(
		&configModel{},
		&paywallModel{},
		&paymentModel{},
		&balanceModel{},
		&outboxModel{},
	); err != nil {
		return fmt.Errorf("migrate paywall ledger schema: %w", err)
	}
	r.logger.Info("paywall ledger schema migrated",
		"event", "paywall_ledger_schema_migrated",
		"module", "finance-core/paywall-ledger",
		"layer", "adapter",
	)
	return nil
}

// Atomically runs fn in one database transaction. Settlements touching the
// same balance rows in opposite order can deadlock; postgres aborts one side
// with 40P01 and the whole callback is replayed.
func (r *Repository) Atomically(ctx context.Context, fn func(tx ports.LedgerTx) error) error {
	return retryAborted(ctx, r.logger, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(&ledgerTx{db: tx})
		})
	})
}

const maxTransactionAttempts = 3

func retryAborted(ctx context.Context, logger *slog.Logger, run func() error) error {
	var err error
	for attempt := 1; attempt <= maxTransactionAttempts; attempt++ {
		err = run()
		if !isTransactionAborted(err) || ctx.Err() != nil {
			return err
		}
		logger.Warn("ledger transaction aborted, retrying",
			"event", "paywall_ledger_tx_retry",
			"module", "finance-core/paywall-ledger",
			"layer", "adapter",
			"attempt", attempt,
			"error", err.Error(),
		)
	}
	return err
}

// isTransactionAborted reports deadlock (40P01) and serialization (40001)
// failures, both safe to replay from the start.
func isTransactionAborted(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40P01" || pgErr.Code == "40001"
}

func (r *Repository) GetConfig(ctx context.Context, slot entities.Slot) (entities.Config, error) {
	var row configModel
	if err := r.db.WithContext(ctx).
		Where("slot = ?", slot.String()).
		First(&row).
		Error; err != nil {
		return entities.Config{}, mapNotFound(err)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetPaywall(ctx context.Context, slot entities.Slot) (entities.Paywall, error) {
	var row paywallModel
	if err := r.db.WithContext(ctx).
		Where("slot = ?", slot.String()).
		First(&row).
		Error; err != nil {
		return entities.Paywall{}, mapNotFound(err)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListPaywallsByCreator(ctx context.Context, creatorID string, limit int, offset int) ([]entities.Paywall, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rows []paywallModel
	if err := r.db.WithContext(ctx).
		Where("creator_id = ?", strings.TrimSpace(creatorID)).
		Order("created_at ASC").
		Order("paywall_id ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.Paywall, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetPayment(ctx context.Context, slot entities.Slot) (entities.Payment, error) {
	var row paymentModel
	if err := r.db.WithContext(ctx).
		Where("slot = ?", slot.String()).
		First(&row).
		Error; err != nil {
		return entities.Payment{}, mapNotFound(err)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetBalance(ctx context.Context, accountID string) (uint64, error) {
	var row balanceModel
	err := r.db.WithContext(ctx).
		Where("account_id = ?", strings.TrimSpace(accountID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return uint64(row.Balance), nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("seq ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      append([]byte(nil), row.Payload...),
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":  outboxStatusSent,
			"sent_at": sentAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrSlotNotFound
	}
	return nil
}

// ledgerTx binds LedgerTx to one gorm transaction. Loads meant for mutation
// take row locks so concurrent purchases of one paywall serialize.
type ledgerTx struct {
	db *gorm.DB
}

func (t *ledgerTx) CreateConfig(_ context.Context, slot entities.Slot, config entities.Config) error {
	row, err := configModelFromEntity(slot, config)
	if err != nil {
		return err
	}
	return mapWriteError(t.db.Create(&row).Error)
}

func (t *ledgerTx) LoadConfig(_ context.Context, slot entities.Slot) (entities.Config, error) {
	return t.loadConfig(slot, clause.LockingStrengthShare)
}

func (t *ledgerTx) LoadConfigForUpdate(_ context.Context, slot entities.Slot) (entities.Config, error) {
	return t.loadConfig(slot, clause.LockingStrengthUpdate)
}

func (t *ledgerTx) loadConfig(slot entities.Slot, strength string) (entities.Config, error) {
	var row configModel
	if err := t.db.Clauses(clause.Locking{Strength: strength}).
		Where("slot = ?", slot.String()).
		First(&row).
		Error; err != nil {
		return entities.Config{}, mapNotFound(err)
	}
	return row.toEntity(), nil
}

func (t *ledgerTx) SaveConfig(_ context.Context, slot entities.Slot, config entities.Config) error {
	row, err := configModelFromEntity(slot, config)
	if err != nil {
		return err
	}
	result := t.db.Model(&configModel{}).
		Where("slot = ?", row.Slot).
		Updates(map[string]any{
			"authority":             row.Authority,
			"fee_recipient":         row.FeeRecipient,
			"min_fee_amount":        row.MinFeeAmount,
			"fee_percent":           row.FeePercent,
			"paywall_creation_cost": row.PaywallCreationCost,
			"updated_at":            row.UpdatedAt,
		})
	if result.Error != nil {
		return mapWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrSlotNotFound
	}
	return nil
}

func (t *ledgerTx) CreatePaywall(_ context.Context, slot entities.Slot, paywall entities.Paywall) error {
	row, err := paywallModelFromEntity(slot, paywall)
	if err != nil {
		return err
	}
	return mapWriteError(t.db.Create(&row).Error)
}

func (t *ledgerTx) LoadPaywall(_ context.Context, slot entities.Slot) (entities.Paywall, error) {
	var row paywallModel
	if err := t.db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("slot = ?", slot.String()).
		First(&row).
		Error; err != nil {
		return entities.Paywall{}, mapNotFound(err)
	}
	return row.toEntity(), nil
}

func (t *ledgerTx) SavePaywall(_ context.Context, slot entities.Slot, paywall entities.Paywall) error {
	row, err := paywallModelFromEntity(slot, paywall)
	if err != nil {
		return err
	}
	result := t.db.Model(&paywallModel{}).
		Where("slot = ?", row.Slot).
		Updates(map[string]any{
			"price_amount": row.PriceAmount,
			"max_supply":   row.MaxSupply,
			"minted_count": row.MintedCount,
			"updated_at":   row.UpdatedAt,
		})
	if result.Error != nil {
		return mapWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrSlotNotFound
	}
	return nil
}

func (t *ledgerTx) CreatePayment(_ context.Context, slot entities.Slot, payment entities.Payment) error {
	row, err := paymentModelFromEntity(slot, payment)
	if err != nil {
		return err
	}
	return mapWriteError(t.db.Create(&row).Error)
}

func (t *ledgerTx) LoadPayment(_ context.Context, slot entities.Slot) (entities.Payment, error) {
	var row paymentModel
	if err := t.db.Where("slot = ?", slot.String()).
		First(&row).
		Error; err != nil {
		return entities.Payment{}, mapNotFound(err)
	}
	return row.toEntity(), nil
}

func (t *ledgerTx) Transfer(_ context.Context, from string, to string, amount uint64) error {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from == "" || to == "" {
		return domainerrors.ErrInvalidIdentity
	}
	debit, err := toBigint(amount)
	if err != nil {
		return err
	}

	var source balanceModel
	err = t.db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("account_id = ?", from).
		First(&source).
		Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if source.Balance < debit {
		return domainerrors.ErrInsufficientFunds
	}
	if amount == 0 || from == to {
		return nil
	}

	now := time.Now().UTC()
	if err := t.db.Model(&balanceModel{}).
		Where("account_id = ?", from).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance - ?", debit),
			"updated_at": now,
		}).
		Error; err != nil {
		return mapWriteError(err)
	}
	return creditTx(t.db, to, amount, now)
}

func (t *ledgerTx) Credit(_ context.Context, accountID string, amount uint64) error {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return domainerrors.ErrInvalidIdentity
	}
	return creditTx(t.db, accountID, amount, time.Now().UTC())
}

func (t *ledgerTx) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:     strings.TrimSpace(envelope.EventID),
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.PartitionKey),
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	if row.OutboxID == "" {
		return domainerrors.ErrInvalidIdentity
	}
	return mapWriteError(t.db.Omit("seq").Create(&row).Error)
}

func creditTx(db *gorm.DB, accountID string, amount uint64, now time.Time) error {
	credit, err := toBigint(amount)
	if err != nil {
		return err
	}
	row := balanceModel{
		AccountID: accountID,
		Balance:   credit,
		UpdatedAt: now,
	}
	return mapWriteError(db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "account_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"balance":    gorm.Expr("account_balances.balance + EXCLUDED.balance"),
			"updated_at": now,
		}),
	}).Create(&row).Error)
}

type configModel struct {
	Slot                string    `gorm:"column:slot;primaryKey"`
	Authority           string    `gorm:"column:authority"`
	FeeRecipient        string    `gorm:"column:fee_recipient"`
	MinFeeAmount        int64     `gorm:"column:min_fee_amount"`
	FeePercent          int64     `gorm:"column:fee_percent"`
	PaywallCreationCost int64     `gorm:"column:paywall_creation_cost"`
	CreatedAt           time.Time `gorm:"column:created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at"`
}

func (configModel) TableName() string {
	return "paywall_config"
}

func configModelFromEntity(slot entities.Slot, config entities.Config) (configModel, error) {
	minFee, err := toBigint(config.MinFeeAmount)
	if err != nil {
		return configModel{}, err
	}
	percent, err := toBigint(config.FeePercent)
	if err != nil {
		return configModel{}, err
	}
	creationCost, err := toBigint(config.PaywallCreationCost)
	if err != nil {
		return configModel{}, err
	}
	return configModel{
		Slot:                slot.String(),
		Authority:           config.Authority,
		FeeRecipient:        config.FeeRecipient,
		MinFeeAmount:        minFee,
		FeePercent:          percent,
		PaywallCreationCost: creationCost,
		CreatedAt:           config.CreatedAt.UTC(),
		UpdatedAt:           config.UpdatedAt.UTC(),
	}, nil
}

func (m configModel) toEntity() entities.Config {
	return entities.Config{
		Authority:           m.Authority,
		FeeRecipient:        m.FeeRecipient,
		MinFeeAmount:        uint64(m.MinFeeAmount),
		FeePercent:          uint64(m.FeePercent),
		PaywallCreationCost: uint64(m.PaywallCreationCost),
		CreatedAt:           m.CreatedAt.UTC(),
		UpdatedAt:           m.UpdatedAt.UTC(),
	}
}

type paywallModel struct {
	Slot        string    `gorm:"column:slot;primaryKey"`
	PaywallID   string    `gorm:"column:paywall_id;size:50"`
	CreatorID   string    `gorm:"column:creator_id;index"`
	PriceAmount int64     `gorm:"column:price_amount"`
	MaxSupply   int64     `gorm:"column:max_supply"`
	MintedCount int64     `gorm:"column:minted_count"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (paywallModel) TableName() string {
	return "paywalls"
}

func paywallModelFromEntity(slot entities.Slot, paywall entities.Paywall) (paywallModel, error) {
	price, err := toBigint(paywall.PriceAmount)
	if err != nil {
		return paywallModel{}, err
	}
	maxSupply, err := toBigint(paywall.MaxSupply)
	if err != nil {
		return paywallModel{}, err
	}
	minted, err := toBigint(paywall.MintedCount)
	if err != nil {
		return paywallModel{}, err
	}
	return paywallModel{
		Slot:        slot.String(),
		PaywallID:   paywall.ID,
		CreatorID:   paywall.CreatorID,
		PriceAmount: price,
		MaxSupply:   maxSupply,
		MintedCount: minted,
		CreatedAt:   paywall.CreatedAt.UTC(),
		UpdatedAt:   paywall.UpdatedAt.UTC(),
	}, nil
}

func (m paywallModel) toEntity() entities.Paywall {
	return entities.Paywall{
		ID:          m.PaywallID,
		CreatorID:   m.CreatorID,
		PriceAmount: uint64(m.PriceAmount),
		MaxSupply:   uint64(m.MaxSupply),
		MintedCount: uint64(m.MintedCount),
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

type paymentModel struct {
	Slot          string    `gorm:"column:slot;primaryKey"`
	CreatorID     string    `gorm:"column:creator_id"`
	PaywallID     string    `gorm:"column:paywall_id;size:50"`
	PayerID       string    `gorm:"column:payer_id;index"`
	AmountPaid    int64     `gorm:"column:amount_paid"`
	FeeAmount     int64     `gorm:"column:fee_amount"`
	CreatorAmount int64     `gorm:"column:creator_amount"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (paymentModel) TableName() string {
	return "paywall_payments"
}

func paymentModelFromEntity(slot entities.Slot, payment entities.Payment) (paymentModel, error) {
	paid, err := toBigint(payment.AmountPaid)
	if err != nil {
		return paymentModel{}, err
	}
	fee, err := toBigint(payment.FeeAmount)
	if err != nil {
		return paymentModel{}, err
	}
	creatorAmount, err := toBigint(payment.CreatorAmount)
	if err != nil {
		return paymentModel{}, err
	}
	return paymentModel{
		Slot:          slot.String(),
		CreatorID:     payment.CreatorID,
		PaywallID:     payment.PaywallID,
		PayerID:       payment.PayerID,
		AmountPaid:    paid,
		FeeAmount:     fee,
		CreatorAmount: creatorAmount,
		CreatedAt:     payment.CreatedAt.UTC(),
	}, nil
}

func (m paymentModel) toEntity() entities.Payment {
	return entities.Payment{
		CreatorID:     m.CreatorID,
		PaywallID:     m.PaywallID,
		PayerID:       m.PayerID,
		AmountPaid:    uint64(m.AmountPaid),
		FeeAmount:     uint64(m.FeeAmount),
		CreatorAmount: uint64(m.CreatorAmount),
		CreatedAt:     m.CreatedAt.UTC(),
	}
}

type balanceModel struct {
	AccountID string    `gorm:"column:account_id;primaryKey"`
	Balance   int64     `gorm:"column:balance;check:balance >= 0"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (balanceModel) TableName() string {
	return "account_balances"
}

type outboxModel struct {
	Seq          int64      `gorm:"column:seq;autoIncrement"`
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status;index"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	SentAt       *time.Time `gorm:"column:sent_at"`
}

func (outboxModel) TableName() string {
	return "paywall_outbox"
}

// toBigint rejects amounts the bigint columns cannot hold.
func toBigint(value uint64) (int64, error) {
	if value > math.MaxInt64 {
		return 0, domainerrors.ErrNumericalOverflow
	}
	return int64(value), nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainerrors.ErrSlotNotFound
	}
	return err
}

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return domainerrors.ErrSlotAlreadyExists
		case "22003":
			return domainerrors.ErrNumericalOverflow
		}
	}
	return err
}
