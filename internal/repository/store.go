package repository

import (
	"context"
	"sync"

	"gorm.io/gorm"
)

// GormStore implements Store and TxRunner on top of a *gorm.DB.
type GormStore struct {
	db   *gorm.DB
	mu   *sync.Mutex
	inTx bool
}

// NewGormStore creates a store over db.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, mu: &sync.Mutex{}}
}

// RunInTx runs fn inside a database transaction. Units of work issued
// through the same store are serialized so a holding read and its upsert
// never interleave with another writer in this process. A nested call
// joins the outer transaction.
func (s *GormStore) RunInTx(ctx context.Context, fn func(tx Store) error) error {
	if s.inTx {
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, mu: s.mu, inTx: true})
	})
}

// DB returns the underlying connection.
func (s *GormStore) DB() *gorm.DB { return s.db }

func (s *GormStore) Portfolios() PortfolioRepository { return &portfolioRepository{db: s.db} }
func (s *GormStore) Wallets() WalletRepository       { return &walletRepository{db: s.db} }
func (s *GormStore) Assets() AssetRepository         { return &assetRepository{db: s.db} }
func (s *GormStore) Movements() MovementRepository   { return &movementRepository{db: s.db} }
func (s *GormStore) Audit() AuditRepository          { return &auditRepository{db: s.db} }

func (s *GormStore) Holdings() HoldingRepository {
	return &holdingRepository{db: s.db, lockRows: s.inTx}
}

var (
	_ Store    = (*GormStore)(nil)
	_ TxRunner = (*GormStore)(nil)
)
