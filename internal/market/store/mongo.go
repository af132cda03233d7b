package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cnmarket/internal/market/series"
)

// Document layout mirrors the scraper that feeds the store: one database per
// dataset with a collection per symbol, dated documents keyed by the
// source's original field names. Treasury yields live in a single collection
// with one document per day carrying the raw maturity codes.
const (
	mongoStockDB      = "wy_stock_daily"
	mongoIndexDB      = "wy_index_daily"
	mongoTreasuryDB   = "treasury"
	mongoTreasuryColl = "国债利率"

	mongoDateField   = "日期"
	mongoChangeField = "涨跌幅"
)

// Mongo reads market data from the document store.
type Mongo struct {
	client *mongo.Client
}

// NewMongo creates a Mongo-backed store over a connected client.
func NewMongo(client *mongo.Client) *Mongo {
	return &Mongo{client: client}
}

type mongoDailyDoc struct {
	Date      time.Time `bson:"日期"`
	ChangePct *float64  `bson:"涨跌幅"`
}

// DailyChanges returns raw percent changes for a symbol within the range.
// A symbol with no collection simply matches nothing.
func (m *Mongo) DailyChanges(ctx context.Context, kind Kind, symbol string, start, end time.Time) ([]ChangeRow, error) {
	db, err := changeDatabase(kind)
	if err != nil {
		return nil, err
	}
	coll := m.client.Database(db).Collection(symbol)

	filter := bson.M{mongoDateField: bson.M{"$gte": start, "$lte": end}}
	opts := options.Find().
		SetProjection(bson.M{mongoDateField: 1, mongoChangeField: 1, "_id": 0}).
		SetSort(bson.D{{Key: mongoDateField, Value: 1}})

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s changes: %w", kind, err)
	}
	defer cursor.Close(ctx)

	var out []ChangeRow
	for cursor.Next(ctx) {
		var doc mongoDailyDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode change document: %w", err)
		}
		row := ChangeRow{Date: doc.Date}
		if doc.ChangePct != nil {
			row.ChangePct = *doc.ChangePct
			row.Valid = true
		}
		out = append(out, row)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating change documents: %w", err)
	}
	return out, nil
}

// TreasuryRates returns raw yield-curve rows within the range.
func (m *Mongo) TreasuryRates(ctx context.Context, start, end time.Time) ([]RateRow, error) {
	coll := m.client.Database(mongoTreasuryDB).Collection(mongoTreasuryColl)

	filter := bson.M{"date": bson.M{"$gte": start, "$lte": end}}
	opts := options.Find().
		SetProjection(bson.M{"_id": 0}).
		SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query treasury yields: %w", err)
	}
	defer cursor.Close(ctx)

	var out []RateRow
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode treasury document: %w", err)
		}

		date, ok := docDate(doc["date"])
		if !ok {
			return nil, fmt.Errorf("treasury document missing date field")
		}

		row := RateRow{Date: date, Rates: make(map[series.Tenor]float64)}
		for code, value := range doc {
			tenor, known := series.TenorForCode(code)
			if !known {
				continue
			}
			if rate, ok := docFloat(value); ok {
				row.Rates[tenor] = rate
			}
		}
		out = append(out, row)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating treasury documents: %w", err)
	}
	return out, nil
}

func changeDatabase(kind Kind) (string, error) {
	switch kind {
	case KindStock:
		return mongoStockDB, nil
	case KindIndex:
		return mongoIndexDB, nil
	default:
		return "", fmt.Errorf("unknown series kind %q", kind)
	}
}

func docDate(v interface{}) (time.Time, bool) {
	switch d := v.(type) {
	case primitive.DateTime:
		return d.Time().UTC(), true
	case time.Time:
		return d.UTC(), true
	default:
		return time.Time{}, false
	}
}

func docFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
