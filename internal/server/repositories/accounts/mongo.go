package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// CollectionName is the MongoDB collection that holds account documents.
const CollectionName = "accounts"

type notificationDocument struct {
	ReceiveSMSActive              bool `bson:"receiveSMSActive"`
	ReceiveNotificationsActive    bool `bson:"receiveNotificationsActive"`
	ReceiveSMSExpiring            bool `bson:"receiveSMSExpiring"`
	ReceiveNotificationsExpiring  bool `bson:"receiveNotificationsExpiring"`
	ReceiveEmailReceipts          bool `bson:"receiveEmailReceipts"`
	ReceiveNotificationsMarketing bool `bson:"receiveNotificationsMarketing"`
	ActiveParkingHours            int  `bson:"activeParkingHours"`
	ExpiringSoonHours             int  `bson:"expiringSoonHours"`
}

type preferenceDocument struct {
	DarkMode bool   `bson:"darkMode"`
	Language string `bson:"language"`
}

type accountDocument struct {
	ID                   string               `bson:"_id"`
	Name                 string               `bson:"name"`
	Email                string               `bson:"email"`
	Password             string               `bson:"password"`
	DateOfBirth          time.Time            `bson:"dateOfBirth"`
	Address              string               `bson:"address"`
	ZipCode              string               `bson:"zipCode"`
	City                 string               `bson:"city"`
	Phone                string               `bson:"phone"`
	RegNu                string               `bson:"regNu"`
	NotificationSettings notificationDocument `bson:"notificationSettings"`
	PreferenceSettings   preferenceDocument   `bson:"preferenceSettings"`
	CreatedAt            time.Time            `bson:"createdAt"`
	UpdatedAt            time.Time            `bson:"updatedAt"`
}

func toDocument(a *models.Account) accountDocument {
	n, p := a.NotificationSettings, a.PreferenceSettings
	return accountDocument{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		Password:    a.PasswordHash,
		DateOfBirth: a.DateOfBirth,
		Address:     a.Address,
		ZipCode:     a.ZipCode,
		City:        a.City,
		Phone:       a.Phone,
		RegNu:       a.RegNu,
		NotificationSettings: notificationDocument{
			ReceiveSMSActive:              n.ReceiveSMSActive,
			ReceiveNotificationsActive:    n.ReceiveNotificationsActive,
			ReceiveSMSExpiring:            n.ReceiveSMSExpiring,
			ReceiveNotificationsExpiring:  n.ReceiveNotificationsExpiring,
			ReceiveEmailReceipts:          n.ReceiveEmailReceipts,
			ReceiveNotificationsMarketing: n.ReceiveNotificationsMarketing,
			ActiveParkingHours:            n.ActiveParkingHours,
			ExpiringSoonHours:             n.ExpiringSoonHours,
		},
		PreferenceSettings: preferenceDocument{DarkMode: p.DarkMode, Language: p.Language},
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func fromDocument(d *accountDocument) *models.Account {
	n := d.NotificationSettings
	return &models.Account{
		ID:           d.ID,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		DateOfBirth:  d.DateOfBirth,
		Address:      d.Address,
		ZipCode:      d.ZipCode,
		City:         d.City,
		Phone:        d.Phone,
		RegNu:        d.RegNu,
		NotificationSettings: models.NotificationSettings{
			ReceiveSMSActive:              n.ReceiveSMSActive,
			ReceiveNotificationsActive:    n.ReceiveNotificationsActive,
			ReceiveSMSExpiring:            n.ReceiveSMSExpiring,
			ReceiveNotificationsExpiring:  n.ReceiveNotificationsExpiring,
			ReceiveEmailReceipts:          n.ReceiveEmailReceipts,
			ReceiveNotificationsMarketing: n.ReceiveNotificationsMarketing,
			ActiveParkingHours:            n.ActiveParkingHours,
			ExpiringSoonHours:             n.ExpiringSoonHours,
		},
		PreferenceSettings: models.PreferenceSettings{
			DarkMode: d.PreferenceSettings.DarkMode,
			Language: d.PreferenceSettings.Language,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// MongoRepository keeps one document per account. Email uniqueness relies on
// the index created by EnsureIndexes.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

// EnsureIndexes creates the unique email index if it does not exist yet.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	if _, err := r.coll.InsertOne(ctx, toDocument(a)); err != nil {
		return nil, mapMongoWriteError(err)
	}
	return a, nil
}

func (r *MongoRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.D) (*models.Account, error) {
	var d accountDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&d); err != nil {
		return nil, mapMongoFindError(err)
	}
	return fromDocument(&d), nil
}

// Update replaces the whole document. The caller passes a record it loaded
// earlier, so createdAt round-trips unchanged.
func (r *MongoRepository) Update(ctx context.Context, a *models.Account) (*models.Account, error) {
	res, err := r.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: a.ID}}, toDocument(a))
	if err := replaceOutcome(res, err); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *MongoRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}

func mapMongoFindError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}

// replaceOutcome turns a ReplaceOne result into the repository contract:
// no matched document means the account is gone.
func replaceOutcome(res *mongo.UpdateResult, err error) error {
	if err != nil {
		return mapMongoWriteError(err)
	}
	if res == nil || res.MatchedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func mapMongoWriteError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return common.ErrDuplicateEmail
	}
	return fmt.Errorf("db error: %w", err)
}
