package accounts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func TestAccountDocument_StoredShape(t *testing.T) {
	a := fixture()
	a.PreferenceSettings.DarkMode = true

	raw, err := bson.Marshal(toDocument(a))
	require.NoError(t, err)

	doc := bson.Raw(raw)
	assert.Equal(t, a.ID, doc.Lookup("_id").StringValue())
	assert.Equal(t, a.PasswordHash, doc.Lookup("password").StringValue())
	_, err = doc.LookupErr("passwordHash")
	assert.Error(t, err, "hash is stored under password only")

	assert.Equal(t, bson.TypeEmbeddedDocument, doc.Lookup("notificationSettings").Type)
	assert.Equal(t, int64(15), intValue(t, doc.Lookup("notificationSettings", "expiringSoonHours")))
	assert.True(t, doc.Lookup("preferenceSettings", "darkMode").Boolean())
	assert.Equal(t, "danish", doc.Lookup("preferenceSettings", "language").StringValue())
}

func intValue(t *testing.T, v bson.RawValue) int64 {
	t.Helper()
	switch v.Type {
	case bson.TypeInt32:
		return int64(v.Int32())
	case bson.TypeInt64:
		return v.Int64()
	}
	t.Fatalf("unexpected bson type %v", v.Type)
	return 0
}

func TestFromDocument_KeepsEveryField(t *testing.T) {
	a := fixture()
	a.City = "Odense"
	a.NotificationSettings.ReceiveEmailReceipts = true

	d := toDocument(a)
	assert.Equal(t, a, fromDocument(&d))
}

func TestMapMongoWriteError(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.ErrorIs(t, mapMongoWriteError(dup), common.ErrDuplicateEmail)

	other := mapMongoWriteError(errors.New("connection reset"))
	assert.NotErrorIs(t, other, common.ErrDuplicateEmail)
	assert.ErrorContains(t, other, "db error")
}

func TestMapMongoFindError(t *testing.T) {
	assert.ErrorIs(t, mapMongoFindError(mongo.ErrNoDocuments), common.ErrorNotFound)
	assert.ErrorIs(t, mapMongoFindError(fmt.Errorf("decode: %w", mongo.ErrNoDocuments)), common.ErrorNotFound)

	other := mapMongoFindError(errors.New("server selection timeout"))
	assert.NotErrorIs(t, other, common.ErrorNotFound)
	assert.ErrorContains(t, other, "db error")
}

func TestReplaceOutcome(t *testing.T) {
	tests := []struct {
		name string
		res  *mongo.UpdateResult
		err  error
		want error
	}{
		{name: "matched", res: &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}},
		{name: "matched but unchanged", res: &mongo.UpdateResult{MatchedCount: 1}},
		{name: "no document", res: &mongo.UpdateResult{}, want: common.ErrorNotFound},
		{name: "nil result", want: common.ErrorNotFound},
		{name: "duplicate email", err: mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}, want: common.ErrDuplicateEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := replaceOutcome(tt.res, tt.err)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// Runs against a real server when ACCOUNTKEEPER_TEST_MONGO_URI is set.
func TestMongoRepository_Integration(t *testing.T) {
	uri := os.Getenv("ACCOUNTKEEPER_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("ACCOUNTKEEPER_TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	db := client.Database("accountkeeper_test_" + strings.ReplaceAll(uuid.NewString(), "-", ""))
	t.Cleanup(func() { _ = db.Drop(context.Background()) })

	repo := NewMongoRepository(db.Collection(CollectionName))
	require.NoError(t, repo.EnsureIndexes(ctx))
	require.NoError(t, repo.Ping(ctx))

	a := fixture()
	_, err = repo.Create(ctx, a)
	require.NoError(t, err)

	dup := fixture()
	dup.ID = uuid.NewString()
	_, err = repo.Create(ctx, dup)
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)

	got, err := repo.GetByEmail(ctx, a.Email)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	got.City = "Aarhus"
	_, err = repo.Update(ctx, got)
	require.NoError(t, err)
	got, err = repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aarhus", got.City)

	ghost := fixture()
	ghost.ID = uuid.NewString()
	ghost.Email = "ghost@example.dk"
	_, err = repo.Update(ctx, ghost)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, repo.Delete(ctx, a.ID))
	require.NoError(t, repo.Delete(ctx, a.ID))
	_, err = repo.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
