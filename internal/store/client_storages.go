package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-chama-sync/internal/codec"
	"github.com/MKhiriev/go-chama-sync/internal/config"
	"github.com/MKhiriev/go-chama-sync/internal/logger"
	"github.com/MKhiriev/go-chama-sync/models"
)

// ClientStorages groups the local repositories of every syncable collection
// over one SQLite connection.
type ClientStorages struct {
	Users                LocalCollection[models.User]
	Groups               LocalCollection[models.Group]
	UserGroups           LocalCollection[models.UserGroup]
	GroupMembers         LocalCollection[models.GroupMember]
	Members              LocalCollection[models.Member]
	Cycles               LocalCollection[models.Cycle]
	Meetings             LocalCollection[models.Meeting]
	Contributions        LocalCollection[models.Contribution]
	Beneficiaries        LocalCollection[models.Beneficiary]
	Savings              LocalCollection[models.Saving]
	SavingEntries        LocalCollection[models.SavingEntry]
	Benefits             LocalCollection[models.Benefit]
	Expenses             LocalCollection[models.Expense]
	Penalties            LocalCollection[models.Penalty]
	Welfares             LocalCollection[models.Welfare]
	WelfareMeetings      LocalCollection[models.WelfareMeeting]
	WelfareContributions LocalCollection[models.WelfareContribution]
	WelfareBeneficiaries LocalCollection[models.WelfareBeneficiary]

	db *DB
}

// NewClientStorages initialises the client storage layer:
//  1. Opens an SQLite connection to cfg.DSN with foreign keys enforced,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Wires one repository per collection.
func NewClientStorages(ctx context.Context, cfg config.Local, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newClientStorages(db, log), nil
}

func newClientStorages(db *DB, log *logger.Logger) *ClientStorages {
	return &ClientStorages{
		Users:                NewCollectionRepository(db, codec.Users, log),
		Groups:               NewCollectionRepository(db, codec.Groups, log),
		UserGroups:           NewCollectionRepository(db, codec.UserGroups, log),
		GroupMembers:         NewCollectionRepository(db, codec.GroupMembers, log),
		Members:              NewCollectionRepository(db, codec.Members, log),
		Cycles:               NewCollectionRepository(db, codec.Cycles, log),
		Meetings:             NewCollectionRepository(db, codec.Meetings, log),
		Contributions:        NewCollectionRepository(db, codec.Contributions, log),
		Beneficiaries:        NewCollectionRepository(db, codec.Beneficiaries, log),
		Savings:              NewCollectionRepository(db, codec.Savings, log),
		SavingEntries:        NewCollectionRepository(db, codec.SavingEntries, log),
		Benefits:             NewCollectionRepository(db, codec.Benefits, log),
		Expenses:             NewCollectionRepository(db, codec.Expenses, log),
		Penalties:            NewCollectionRepository(db, codec.Penalties, log),
		Welfares:             NewCollectionRepository(db, codec.Welfares, log),
		WelfareMeetings:      NewCollectionRepository(db, codec.WelfareMeetings, log),
		WelfareContributions: NewCollectionRepository(db, codec.WelfareContributions, log),
		WelfareBeneficiaries: NewCollectionRepository(db, codec.WelfareBeneficiaries, log),
		db:                   db,
	}
}

// Exists implements [ReferenceLookup].
func (s *ClientStorages) Exists(ctx context.Context, collection, id string) (bool, error) {
	if codec.Position(collection) < 0 {
		return false, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}

	return s.db.existsIn(ctx, collection, id)
}

// Close closes the underlying connection.
func (s *ClientStorages) Close() error {
	return s.db.Close()
}
