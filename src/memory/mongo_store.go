package memory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Boost-Education-Inc/agents-package/src/retrieval"
)

// MongoStore persists profiles, memories, and retriever bindings in the
// collections named in store.go, keyed by opaque string ids with exact-match
// lookups and whole-field replaces.
type MongoStore struct {
	client    *mongo.Client
	students  *mongo.Collection
	shortTerm *mongo.Collection
	longTerm  *mongo.Collection
	bindings  *mongo.Collection
}

const mongoCloseTimeout = 5 * time.Second

func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if uri == "" {
		return nil, errors.New("mongo uri is required")
	}
	if database == "" {
		return nil, errors.New("mongo database name is required")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	db := client.Database(database)
	return &MongoStore{
		client:    client,
		students:  db.Collection(CollectionStudents),
		shortTerm: db.Collection(CollectionShortTerm),
		longTerm:  db.Collection(CollectionLongTerm),
		bindings:  db.Collection(CollectionContentBots),
	}, nil
}

func (ms *MongoStore) Student(ctx context.Context, id string) (*StudentProfile, error) {
	var profile StudentProfile
	err := ms.students.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func pairFilter(subjectID, topicID string) bson.M {
	return bson.M{"subject_id": subjectID, "topic_id": topicID}
}

func (ms *MongoStore) ShortTerm(ctx context.Context, subjectID, topicID string) (*ShortTermRecord, error) {
	var rec ShortTermRecord
	err := ms.shortTerm.FindOne(ctx, pairFilter(subjectID, topicID)).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (ms *MongoStore) EnsureShortTerm(ctx context.Context, subjectID, topicID string) (*ShortTermRecord, error) {
	rec, err := ms.ShortTerm(ctx, subjectID, topicID)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	fresh := ShortTermRecord{
		ID:           uuid.NewString(),
		SubjectID:    subjectID,
		TopicID:      topicID,
		Interactions: []Interaction{},
	}
	if _, err := ms.shortTerm.InsertOne(ctx, fresh); err != nil {
		return nil, err
	}
	// Re-read so the caller observes the stored document, not the draft.
	return ms.ShortTerm(ctx, subjectID, topicID)
}

func (ms *MongoStore) AppendInteraction(ctx context.Context, rec *ShortTermRecord, entry Interaction) error {
	rec.Interactions = append([]Interaction{entry}, rec.Interactions...)
	_, err := ms.shortTerm.UpdateOne(ctx,
		pairFilter(rec.SubjectID, rec.TopicID),
		bson.M{"$set": bson.M{"interactions": rec.Interactions}})
	return err
}

func (ms *MongoStore) LongTerm(ctx context.Context, subjectID, topicID string) (*LongTermRecord, error) {
	var rec LongTermRecord
	err := ms.longTerm.FindOne(ctx, pairFilter(subjectID, topicID)).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (ms *MongoStore) EnsureLongTerm(ctx context.Context, subjectID, topicID string) (*LongTermRecord, error) {
	rec, err := ms.LongTerm(ctx, subjectID, topicID)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	fresh := LongTermRecord{
		ID:        uuid.NewString(),
		SubjectID: subjectID,
		TopicID:   topicID,
		Summaries: []Summary{},
	}
	if _, err := ms.longTerm.InsertOne(ctx, fresh); err != nil {
		return nil, err
	}
	return ms.LongTerm(ctx, subjectID, topicID)
}

func (ms *MongoStore) PrependSummary(ctx context.Context, rec *LongTermRecord, summary Summary) error {
	rec.Summaries = append([]Summary{summary}, rec.Summaries...)
	_, err := ms.longTerm.UpdateOne(ctx,
		pairFilter(rec.SubjectID, rec.TopicID),
		bson.M{"$set": bson.M{"summaries": rec.Summaries}})
	return err
}

// Binding implements retrieval.BindingStore.
func (ms *MongoStore) Binding(ctx context.Context, id string) (*retrieval.Binding, error) {
	var binding retrieval.Binding
	err := ms.bindings.FindOne(ctx, bson.M{"_id": id}).Decode(&binding)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, retrieval.ErrBindingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &binding, nil
}

// PutBinding implements retrieval.BindingStore. Bindings are immutable after
// creation, so this is insert-only.
func (ms *MongoStore) PutBinding(ctx context.Context, binding *retrieval.Binding) error {
	_, err := ms.bindings.InsertOne(ctx, binding)
	return err
}

// Close releases the underlying MongoDB client.
func (ms *MongoStore) Close() error {
	if ms == nil || ms.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), mongoCloseTimeout)
	defer cancel()
	return ms.client.Disconnect(ctx)
}

var (
	_ Store                  = (*MongoStore)(nil)
	_ retrieval.BindingStore = (*MongoStore)(nil)
)
