package store

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/teasort/pkg/bench"
	"github.com/matzehuels/teasort/pkg/errors"
)

// Defaults for [MongoOptions].
const (
	DefaultDatabase   = "teasort"
	DefaultCollection = "reports"
	DefaultTimeout    = 10 * time.Second
)

// MongoOptions configures a [MongoStore].
type MongoOptions struct {
	URI        string
	Database   string
	Collection string

	// Timeout bounds every operation, including the initial ping.
	Timeout time.Duration
}

// MongoStore keeps reports in a MongoDB collection, one document per report.
// It is safe for concurrent use.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB, verifies the connection and ensures the
// started_at index used by List exists.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if err := errors.ValidateMongoURI(opts.URI); err != nil {
		return nil, err
	}
	if opts.Database == "" {
		opts.Database = DefaultDatabase
	}
	if opts.Collection == "" {
		opts.Collection = DefaultCollection
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI).SetTimeout(opts.Timeout))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "connect to MongoDB")
	}

	pingCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "ping MongoDB")
	}

	coll := client.Database(opts.Database).Collection(opts.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "started_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "create started_at index")
	}

	return &MongoStore{client: client, coll: coll}, nil
}

// Save implements Store.
func (s *MongoStore) Save(ctx context.Context, r *bench.Report) error {
	if err := errors.ValidateReportID(r.ID); err != nil {
		return err
	}
	_, err := s.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: r.ID}},
		toDoc(r),
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnavailable, err, "save report %s", r.ID)
	}
	return nil
}

// Get implements Store.
func (s *MongoStore) Get(ctx context.Context, id string) (*bench.Report, error) {
	if err := errors.ValidateReportID(id); err != nil {
		return nil, err
	}
	var doc reportDoc
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "load report %s", id)
	}
	return fromDoc(doc), nil
}

// List implements Store. Rows are not fetched.
func (s *MongoStore) List(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "started_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.D{{Key: "rows", Value: 0}})

	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "list reports")
	}
	var docs []reportDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "decode reports")
	}

	out := make([]Summary, len(docs))
	for i, d := range docs {
		out[i] = d.summary()
	}
	return out, nil
}

// Delete implements Store.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateReportID(id); err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return errors.Wrap(errors.ErrCodeUnavailable, err, "delete report %s", id)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)

// reportDoc is the stored shape of a report. Seeds and costs are stored as
// int64 because BSON has no unsigned 64-bit type; the conversion is a bit
// reinterpretation and round-trips exactly.
type reportDoc struct {
	ID            string    `bson:"_id"`
	Seed          int64     `bson:"seed"`
	Deterministic bool      `bson:"deterministic"`
	MinSize       int       `bson:"min_size"`
	MaxSize       int       `bson:"max_size"`
	Rounds        int       `bson:"rounds,omitempty"`
	Iterations    int       `bson:"iterations"`
	StartedAt     time.Time `bson:"started_at"`
	DurationNS    int64     `bson:"duration_ns"`
	Growth        float64   `bson:"growth"`
	RowCount      int       `bson:"row_count"`
	Rows          []rowDoc  `bson:"rows,omitempty"`
}

type rowDoc struct {
	N          int     `bson:"n"`
	Iterations int     `bson:"iterations"`
	TotalCost  int64   `bson:"total_cost"`
	AvgCost    float64 `bson:"avg_cost"`
	PerElement float64 `bson:"per_element"`
	PerNLogN   float64 `bson:"per_nlogn"`
	DurationNS int64   `bson:"duration_ns"`
}

func toDoc(r *bench.Report) reportDoc {
	d := reportDoc{
		ID:            r.ID,
		Seed:          int64(r.Seed),
		Deterministic: r.Deterministic,
		MinSize:       r.Options.MinSize,
		MaxSize:       r.Options.MaxSize,
		Rounds:        r.Options.Rounds,
		Iterations:    r.Options.Iterations,
		StartedAt:     r.StartedAt,
		DurationNS:    int64(r.Duration),
		Growth:        r.Growth(),
		RowCount:      len(r.Rows),
		Rows:          make([]rowDoc, len(r.Rows)),
	}
	for i, row := range r.Rows {
		d.Rows[i] = rowDoc{
			N:          row.N,
			Iterations: row.Iterations,
			TotalCost:  int64(row.TotalCost),
			AvgCost:    row.AvgCost,
			PerElement: row.PerElement,
			PerNLogN:   row.PerNLogN,
			DurationNS: int64(row.Duration),
		}
	}
	return d
}

func fromDoc(d reportDoc) *bench.Report {
	r := &bench.Report{
		ID:   d.ID,
		Seed: uint64(d.Seed),
		Options: bench.Options{
			MinSize:    d.MinSize,
			MaxSize:    d.MaxSize,
			Rounds:     d.Rounds,
			Iterations: d.Iterations,
		},
		StartedAt:     d.StartedAt,
		Duration:      time.Duration(d.DurationNS),
		Deterministic: d.Deterministic,
		Rows:          make([]bench.Row, len(d.Rows)),
	}
	if d.Deterministic {
		r.Options.Seed = r.Seed
	}
	for i, row := range d.Rows {
		r.Rows[i] = bench.Row{
			N:          row.N,
			Iterations: row.Iterations,
			TotalCost:  uint64(row.TotalCost),
			AvgCost:    row.AvgCost,
			PerElement: row.PerElement,
			PerNLogN:   row.PerNLogN,
			Duration:   time.Duration(row.DurationNS),
		}
	}
	return r
}

func (d reportDoc) summary() Summary {
	return Summary{
		ID:        d.ID,
		StartedAt: d.StartedAt,
		Seed:      uint64(d.Seed),
		MinSize:   d.MinSize,
		MaxSize:   d.MaxSize,
		Rows:      d.RowCount,
		Growth:    d.Growth,
	}
}
