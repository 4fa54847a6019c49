// Package postgres реализует хранилище учетных записей на PostgreSQL.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"goaccounts/internal/accounts/domain/entities"
	"goaccounts/internal/accounts/ports/repositories"
	"goaccounts/internal/accounts/ports/services"
	"goaccounts/pkg/logger"
)

const repositoryName = "account"

const (
	queryFindByID = `
        SELECT id, name, email, password_hash, avatar, created_at
        FROM accounts
        WHERE id = $1
    `
	queryFindByEmail = `
        SELECT id, name, email, password_hash, avatar, created_at
        FROM accounts
        WHERE email = $1
    `
	queryInsert = `
        INSERT INTO accounts (name, email, password_hash, avatar)
        VALUES ($1, $2, $3, $4)
        RETURNING id, name, email, password_hash, avatar, created_at
    `
)

// PgxPoolInterface - подмножество pgxpool.Pool, используемое репозиторием.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
}

// AccountRepository реализует repositories.AccountRepository для Postgres.
type AccountRepository struct {
	pool      PgxPoolInterface
	passwords services.PasswordService
}

// NewAccountRepository создает репозиторий учетных записей.
func NewAccountRepository(pool PgxPoolInterface, passwords services.PasswordService) repositories.AccountRepository {
	return &AccountRepository{pool: pool, passwords: passwords}
}

// FindByID находит учетную запись по ID. Некорректный UUID трактуется как отсутствие записи.
func (r *AccountRepository) FindByID(ctx context.Context, id string) (*entities.Account, error) {
	log := logger.Log(ctx).With(zap.String("repository", repositoryName), zap.String("method", "FindByID"))

	if _, err := uuid.Parse(id); err != nil {
		log.Debug(ctx, "malformed account id", zap.String("id", id))
		return nil, entities.ErrAccountNotFound
	}

	account, err := scanAccount(r.pool.QueryRow(ctx, queryFindByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "account not found", zap.String("id", id))
			return nil, entities.ErrAccountNotFound
		}
		log.Error(ctx, "error finding account by id", zap.Error(err))
		return nil, fmt.Errorf("error querying account by id: %w", err)
	}

	return account, nil
}

// FindByEmail находит учетную запись по email.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*entities.Account, error) {
	log := logger.Log(ctx).With(zap.String("repository", repositoryName), zap.String("method", "FindByEmail"))

	account, err := scanAccount(r.pool.QueryRow(ctx, queryFindByEmail, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "account not found", zap.String("email", email))
			return nil, entities.ErrAccountNotFound
		}
		log.Error(ctx, "error finding account by email", zap.Error(err))
		return nil, fmt.Errorf("error querying account by email: %w", err)
	}

	return account, nil
}

// Create хэширует пароль и вставляет запись. Нарушение уникальности email
// возвращается как entities.ErrEmailTaken.
func (r *AccountRepository) Create(ctx context.Context, candidate *entities.NewAccount) (*entities.Account, error) {
	log := logger.Log(ctx).With(zap.String("repository", repositoryName), zap.String("method", "Create"))

	hash, err := r.passwords.Hash(ctx, candidate.Password)
	if err != nil {
		log.Error(ctx, "error hashing password", zap.Error(err))
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	avatar, err := json.Marshal(candidate.Avatar)
	if err != nil {
		return nil, fmt.Errorf("error encoding avatar: %w", err)
	}

	account, err := scanAccount(r.pool.QueryRow(ctx, queryInsert, candidate.Name, candidate.Email, hash, avatar))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			log.Debug(ctx, "email already registered", zap.String("email", candidate.Email))
			return nil, entities.ErrEmailTaken
		}
		log.Error(ctx, "error creating account", zap.Error(err))
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	return account, nil
}

func scanAccount(row pgx.Row) (*entities.Account, error) {
	var (
		account entities.Account
		avatar  []byte
	)
	if err := row.Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&avatar,
		&account.CreatedAt,
	); err != nil {
		return nil, err
	}

	if len(avatar) > 0 {
		if err := json.Unmarshal(avatar, &account.Avatar); err != nil {
			return nil, fmt.Errorf("error decoding avatar: %w", err)
		}
	}

	return &account, nil
}
