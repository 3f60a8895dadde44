package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/schemas"
	"github.com/aakashkavuru101/Product-Marketing-portfolio/source/utils"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	MONGO_TIMEOUT           = 20 * time.Second
	COLLECTION_CASE_STUDIES = "case_studies"
	COLLECTION_FRAMEWORKS   = "frameworks"
	COLLECTION_METRICS      = "metrics"

	DEFAULT_DB_NAME = "gtm_portfolio_db"
)

func GetDB(environment, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	switch environment {
	case utils.ENV_RELEASE:
		return DEFAULT_DB_NAME, nil
	case utils.ENV_HOMOLOG:
		return DEFAULT_DB_NAME + "_homolog", nil
	case utils.ENV_DEVELOPMENT:
		return DEFAULT_DB_NAME + "_development", nil
	}

	return "", fmt.Errorf("[MongoDB] invalid environment %q", environment)
}

// withoutInternalID keeps the storage _id out of every decoded document.
var withoutInternalID = bson.D{{Key: "_id", Value: 0}}

type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func ConnectMongo(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetTimeout(MONGO_TIMEOUT).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("[MongoDB] connect: %w", err)
	}

	store := NewMongoStore(client, dbName)
	if err := store.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return store, nil
}

func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	return &MongoStore{client: client, db: client.Database(dbName)}
}

func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("[MongoDB] ping: %w", err)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) FindCaseStudies(ctx context.Context) ([]schemas.CaseStudy, error) {
	ctx, span := startSpan(ctx, "store.FindCaseStudies")
	defer span.End()

	caseStudies := []schemas.CaseStudy{}
	if err := s.findAll(ctx, COLLECTION_CASE_STUDIES, bson.D{}, &caseStudies); err != nil {
		return nil, recordError(span, err)
	}
	for i := range caseStudies {
		normalizeCaseStudy(&caseStudies[i])
	}
	return caseStudies, nil
}

func (s *MongoStore) FindCaseStudy(ctx context.Context, id string) (schemas.CaseStudy, error) {
	ctx, span := startSpan(ctx, "store.FindCaseStudy")
	defer span.End()

	collection := s.db.Collection(COLLECTION_CASE_STUDIES)
	opts := options.FindOne().SetProjection(withoutInternalID)

	caseStudy := schemas.CaseStudy{}
	err := collection.FindOne(ctx, bson.D{{Key: "id", Value: id}}, opts).Decode(&caseStudy)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return schemas.CaseStudy{}, ErrNotFound
		}
		return schemas.CaseStudy{}, recordError(span, fmt.Errorf("find case study %q: %w", id, err))
	}
	normalizeCaseStudy(&caseStudy)
	return caseStudy, nil
}

func (s *MongoStore) FindFrameworks(ctx context.Context) ([]schemas.GTMFramework, error) {
	ctx, span := startSpan(ctx, "store.FindFrameworks")
	defer span.End()

	frameworks := []schemas.GTMFramework{}
	if err := s.findAll(ctx, COLLECTION_FRAMEWORKS, bson.D{}, &frameworks); err != nil {
		return nil, recordError(span, err)
	}
	for i := range frameworks {
		frameworks[i].Phases = normalizeDocuments(frameworks[i].Phases)
	}
	return frameworks, nil
}

func (s *MongoStore) FindMetricsByCaseStudy(ctx context.Context, caseStudyID string) ([]schemas.Metric, error) {
	ctx, span := startSpan(ctx, "store.FindMetricsByCaseStudy")
	defer span.End()

	metrics := []schemas.Metric{}
	filter := bson.D{{Key: "case_study_id", Value: caseStudyID}}
	if err := s.findAll(ctx, COLLECTION_METRICS, filter, &metrics); err != nil {
		return nil, recordError(span, err)
	}
	return metrics, nil
}

// CountCaseStudies counts every case study when companyType is empty.
func (s *MongoStore) CountCaseStudies(ctx context.Context, companyType string) (int64, error) {
	ctx, span := startSpan(ctx, "store.CountCaseStudies")
	defer span.End()

	filter := bson.D{}
	if companyType != "" {
		filter = bson.D{{Key: "company_type", Value: companyType}}
	}

	count, err := s.db.Collection(COLLECTION_CASE_STUDIES).CountDocuments(ctx, filter)
	if err != nil {
		return 0, recordError(span, fmt.Errorf("count case studies: %w", err))
	}
	return count, nil
}

func (s *MongoStore) AverageSuccessRate(ctx context.Context) (float64, error) {
	ctx, span := startSpan(ctx, "store.AverageSuccessRate")
	defer span.End()

	cursor, err := s.db.Collection(COLLECTION_CASE_STUDIES).Aggregate(ctx, averageSuccessRatePipeline())
	if err != nil {
		return 0, recordError(span, fmt.Errorf("aggregate success rate: %w", err))
	}
	defer cursor.Close(ctx)

	var result []struct {
		AvgSuccessRate *float64 `bson:"avg_success_rate"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return 0, recordError(span, fmt.Errorf("aggregate success rate: %w", err))
	}

	if len(result) == 0 || result[0].AvgSuccessRate == nil {
		return 0, nil
	}
	return *result[0].AvgSuccessRate, nil
}

func averageSuccessRatePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "avg_success_rate", Value: bson.D{{Key: "$avg", Value: "$success_rate"}}},
		}}},
	}
}

func (s *MongoStore) findAll(ctx context.Context, collectionName string, filter bson.D, out any) error {
	opts := options.Find().SetProjection(withoutInternalID)

	cursor, err := s.db.Collection(collectionName).Find(ctx, filter, opts)
	if err != nil {
		return fmt.Errorf("find %s: %w", collectionName, err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s: %w", collectionName, err)
	}
	return nil
}

// Seed replaces the three collections with data. It is the only write path
// and is never reachable from an HTTP handler.
func (s *MongoStore) Seed(ctx context.Context, data SeedData) error {
	for _, name := range []string{COLLECTION_CASE_STUDIES, COLLECTION_FRAMEWORKS, COLLECTION_METRICS} {
		if _, err := s.db.Collection(name).DeleteMany(ctx, bson.D{}); err != nil {
			return fmt.Errorf("clear %s: %w", name, err)
		}
	}

	if err := s.ensureIndexes(ctx); err != nil {
		return err
	}

	if len(data.CaseStudies) > 0 {
		if _, err := s.db.Collection(COLLECTION_CASE_STUDIES).InsertMany(ctx, data.CaseStudies); err != nil {
			return fmt.Errorf("insert case studies: %w", err)
		}
	}
	if len(data.Frameworks) > 0 {
		if _, err := s.db.Collection(COLLECTION_FRAMEWORKS).InsertMany(ctx, data.Frameworks); err != nil {
			return fmt.Errorf("insert frameworks: %w", err)
		}
	}
	if len(data.Metrics) > 0 {
		if _, err := s.db.Collection(COLLECTION_METRICS).InsertMany(ctx, data.Metrics); err != nil {
			return fmt.Errorf("insert metrics: %w", err)
		}
	}

	return nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	uniqueID := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	indexes := map[string][]mongo.IndexModel{
		COLLECTION_CASE_STUDIES: {uniqueID, {Keys: bson.D{{Key: "company_type", Value: 1}}}},
		COLLECTION_FRAMEWORKS:   {uniqueID},
		COLLECTION_METRICS:      {uniqueID, {Keys: bson.D{{Key: "case_study_id", Value: 1}}}},
	}

	for name, models := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

func normalizeCaseStudy(cs *schemas.CaseStudy) {
	cs.MarketResearch = normalizeDocument(cs.MarketResearch)
	cs.CompetitiveAnalysis = normalizeDocument(cs.CompetitiveAnalysis)
	cs.PricingStrategy = normalizeDocument(cs.PricingStrategy)
	cs.ChannelStrategy = normalizeDocument(cs.ChannelStrategy)
	cs.ExecutionTimeline = normalizeDocuments(cs.ExecutionTimeline)
	cs.KeyMetrics = normalizeDocument(cs.KeyMetrics)
}

func normalizeDocuments(docs []schemas.Document) []schemas.Document {
	for i, doc := range docs {
		docs[i] = normalizeDocument(doc)
	}
	return docs
}

func normalizeDocument(doc schemas.Document) schemas.Document {
	if doc == nil {
		return nil
	}
	out := make(schemas.Document, len(doc))
	for k, v := range doc {
		out[k] = normalizeValue(v)
	}
	return out
}

// normalizeValue rewrites the driver's bson container types into plain maps
// and slices, so both stores hand out the same tree shapes.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case bson.M:
		return normalizeDocument(map[string]any(val))
	case map[string]any:
		return normalizeDocument(val)
	case bson.D:
		out := make(map[string]any, len(val))
		for _, e := range val {
			out[e.Key] = normalizeValue(e.Value)
		}
		return out
	case bson.A:
		return normalizeSlice([]any(val))
	case []any:
		return normalizeSlice(val)
	}
	return v
}

func normalizeSlice(in []any) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = normalizeValue(v)
	}
	return out
}
