// Package mongodb реализует хранилище учетных записей на MongoDB.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"goaccounts/internal/accounts/domain/entities"
	"goaccounts/internal/accounts/ports/repositories"
	"goaccounts/internal/accounts/ports/services"
	"goaccounts/pkg/logger"
)

const (
	repositoryName = "account"
	fieldID        = "_id"
	fieldEmail     = "email"
)

type accountDocument struct {
	ID           string         `bson:"_id"`
	Name         string         `bson:"name"`
	Email        string         `bson:"email"`
	PasswordHash string         `bson:"password_hash"`
	Avatar       avatarDocument `bson:"avatar"`
	CreatedAt    time.Time      `bson:"created_at"`
}

type avatarDocument struct {
	Seed    string                    `bson:"seed"`
	URL     string                    `bson:"url"`
	Options map[string]optionDocument `bson:"options,omitempty"`
}

type optionDocument struct {
	Values []string `bson:"values"`
	List   bool     `bson:"list,omitempty"`
}

// AccountRepository реализует repositories.AccountRepository для MongoDB.
type AccountRepository struct {
	collection *mongo.Collection
	passwords  services.PasswordService
}

// NewAccountRepository создает репозиторий поверх коллекции.
func NewAccountRepository(collection *mongo.Collection, passwords services.PasswordService) repositories.AccountRepository {
	return &AccountRepository{collection: collection, passwords: passwords}
}

// EnsureIndexes создает уникальный индекс по email. Без него проверка занятости email не атомарна.
func EnsureIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: fieldEmail, Value: 1}},
		Options: options.Index().SetUnique(true).SetName("accounts_email_key"),
	})
	if err != nil {
		return fmt.Errorf("error creating email index: %w", err)
	}
	return nil
}

// FindByID находит учетную запись по ID.
func (r *AccountRepository) FindByID(ctx context.Context, id string) (*entities.Account, error) {
	return r.findBy(ctx, "FindByID", fieldID, id)
}

// FindByEmail находит учетную запись по email.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*entities.Account, error) {
	return r.findBy(ctx, "FindByEmail", fieldEmail, email)
}

func (r *AccountRepository) findBy(ctx context.Context, method, key, value string) (*entities.Account, error) {
	log := logger.Log(ctx).With(zap.String("repository", repositoryName), zap.String("method", method))

	var doc accountDocument
	if err := r.collection.FindOne(ctx, bson.M{key: value}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			log.Debug(ctx, "account not found", zap.String(key, value))
			return nil, entities.ErrAccountNotFound
		}
		log.Error(ctx, "error finding account", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("error querying account by %s: %w", key, err)
	}

	return doc.account(), nil
}

// Create хэширует пароль и вставляет документ. Дубликат email возвращается как entities.ErrEmailTaken.
func (r *AccountRepository) Create(ctx context.Context, candidate *entities.NewAccount) (*entities.Account, error) {
	log := logger.Log(ctx).With(zap.String("repository", repositoryName), zap.String("method", "Create"))

	hash, err := r.passwords.Hash(ctx, candidate.Password)
	if err != nil {
		log.Error(ctx, "error hashing password", zap.Error(err))
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	doc := accountDocument{
		ID:           uuid.NewString(),
		Name:         candidate.Name,
		Email:        candidate.Email,
		PasswordHash: hash,
		Avatar:       newAvatarDocument(candidate.Avatar),
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Debug(ctx, "email already registered", zap.String("email", candidate.Email))
			return nil, entities.ErrEmailTaken
		}
		log.Error(ctx, "error creating account", zap.Error(err))
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	return doc.account(), nil
}

func newAvatarDocument(a entities.Avatar) avatarDocument {
	doc := avatarDocument{Seed: a.Seed, URL: a.URL}
	if len(a.Options) > 0 {
		doc.Options = make(map[string]optionDocument, len(a.Options))
		for k, v := range a.Options {
			doc.Options[k] = optionDocument{Values: v.Values, List: v.List}
		}
	}
	return doc
}

func (d accountDocument) account() *entities.Account {
	avatar := entities.Avatar{Seed: d.Avatar.Seed, URL: d.Avatar.URL}
	if len(d.Avatar.Options) > 0 {
		avatar.Options = make(map[string]entities.StyleValue, len(d.Avatar.Options))
		for k, v := range d.Avatar.Options {
			avatar.Options[k] = entities.StyleValue{Values: v.Values, List: v.List}
		}
	}

	return &entities.Account{
		ID:           d.ID,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Avatar:       avatar,
		CreatedAt:    d.CreatedAt,
	}
}
