package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ajitpratap0/vrem/pkg/codec"
	"github.com/ajitpratap0/vrem/pkg/config"
	"github.com/ajitpratap0/vrem/pkg/errors"
	"github.com/ajitpratap0/vrem/pkg/metrics"
	"github.com/ajitpratap0/vrem/pkg/models"
	"github.com/ajitpratap0/vrem/pkg/observability"
)

const (
	appName = "vrem"

	defaultConnectTimeout   = 10 * time.Second
	defaultOperationTimeout = 30 * time.Second
)

// MongoStore implements Store on a MongoDB collection
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	serializer *codec.Serializer
	timeout    time.Duration
	metrics    *metrics.StoreCollector
	logger     *zap.Logger
}

// Connect opens a client using the codec registry, pings the server and
// returns a store on the configured collection. m may be nil.
func Connect(ctx context.Context, cfg config.DatabaseConfig, m *metrics.StoreCollector, logger *zap.Logger) (*MongoStore, error) {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = defaultConnectTimeout
	}
	if cfg.OperationTimeout <= 0 {
		cfg.OperationTimeout = defaultOperationTimeout
	}

	serializer := codec.NewSerializer()
	log := logger.With(zap.String("component", "store"), zap.String("database", cfg.Name), zap.String("collection", cfg.Collection))

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout).
		SetRegistry(serializer.Registry())

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to connect to MongoDB")
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to ping MongoDB")
	}

	log.Info("connected to MongoDB")

	return &MongoStore{
		client:     client,
		collection: client.Database(cfg.Name).Collection(cfg.Collection),
		serializer: serializer,
		timeout:    cfg.OperationTimeout,
		metrics:    m,
		logger:     log,
	}, nil
}

// GetByName implements Store
func (s *MongoStore) GetByName(ctx context.Context, name string) (e *models.Exhibition, err error) {
	ctx, done := s.begin(ctx, "get_by_name", attribute.String("name", name))
	defer func() { done(err) }()

	return s.findOne(ctx, bson.D{{Key: codec.FieldName, Value: name}}, "name", name)
}

// GetByID implements Store
func (s *MongoStore) GetByID(ctx context.Context, id primitive.ObjectID) (e *models.Exhibition, err error) {
	ctx, done := s.begin(ctx, "get_by_id", attribute.String("id", id.Hex()))
	defer func() { done(err) }()

	return s.findOne(ctx, bson.D{{Key: codec.FieldID, Value: id}}, "id", id.Hex())
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.D, key, value string) (*models.Exhibition, error) {
	raw, err := s.collection.FindOne(ctx, filter).Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New(errors.ErrorTypeNotFound, "exhibition not found").WithDetail(key, value)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeQuery, "failed to load exhibition").WithDetail(key, value)
	}
	return s.serializer.Unmarshal(raw)
}

// Save implements Store. The document is encoded by the driver through the
// codec registry.
func (s *MongoStore) Save(ctx context.Context, e *models.Exhibition) (err error) {
	ctx, done := s.begin(ctx, "save", attribute.String("name", e.Name), attribute.String("id", e.ID.Hex()))
	defer func() { done(err) }()

	res, err := s.collection.ReplaceOne(ctx,
		bson.D{{Key: codec.FieldID, Value: e.ID}},
		e,
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeQuery, "failed to save exhibition").
			WithDetail("name", e.Name)
	}

	s.logger.Info("saved exhibition",
		zap.String("name", e.Name),
		zap.String("id", e.ID.Hex()),
		zap.Int64("matched", res.MatchedCount),
		zap.Bool("inserted", res.UpsertedCount > 0))
	return nil
}

// DeleteByName implements Store
func (s *MongoStore) DeleteByName(ctx context.Context, name string) (n int64, err error) {
	ctx, done := s.begin(ctx, "delete_by_name", attribute.String("name", name))
	defer func() { done(err) }()

	res, err := s.collection.DeleteMany(ctx, bson.D{{Key: codec.FieldName, Value: name}})
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrorTypeQuery, "failed to delete exhibition").
			WithDetail("name", name)
	}
	s.logger.Info("deleted exhibitions", zap.String("name", name), zap.Int64("count", res.DeletedCount))
	return res.DeletedCount, nil
}

// List implements Store
func (s *MongoStore) List(ctx context.Context) (out []Summary, err error) {
	ctx, done := s.begin(ctx, "list")
	defer func() { done(err) }()

	opts := options.Find().
		SetProjection(bson.D{
			{Key: codec.FieldID, Value: 1},
			{Key: codec.FieldName, Value: 1},
			{Key: codec.FieldDescription, Value: 1},
		}).
		SetSort(bson.D{{Key: codec.FieldName, Value: 1}})

	cursor, err := s.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeQuery, "failed to list exhibitions")
	}
	out = make([]Summary, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeQuery, "failed to read exhibition list")
	}
	return out, nil
}

// Close implements Store
func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return errors.Wrap(err, errors.ErrorTypeConnection, "failed to disconnect from MongoDB")
	}
	return nil
}

// begin applies the operation timeout and opens a span. The returned
// function records the outcome.
func (s *MongoStore) begin(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	timer := metrics.NewTimer()
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	ctx, span := observability.Start(ctx, "store."+op, attrs...)
	return ctx, func(err error) {
		observability.End(span, err)
		cancel()
		s.metrics.Observe(op, timer.Stop(), err)
	}
}
