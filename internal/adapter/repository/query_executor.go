package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"arcmarket/internal/query"
	"arcmarket/pkg/errors"
)

// clausePredicate translates one compiled clause. Field names pass
// through verbatim; an unknown operator degrades to equality.
func clausePredicate(c query.Clause) bson.M {
	switch c.Operator {
	case "", "eq", "==":
		return bson.M{c.Field: c.Value}
	case "ne", "!=":
		return bson.M{c.Field: bson.M{"$ne": c.Value}}
	case "gt", ">":
		return bson.M{c.Field: bson.M{"$gt": c.Value}}
	case "gte", ">=":
		return bson.M{c.Field: bson.M{"$gte": c.Value}}
	case "lt", "<":
		return bson.M{c.Field: bson.M{"$lt": c.Value}}
	case "lte", "<=":
		return bson.M{c.Field: bson.M{"$lte": c.Value}}
	case "in":
		return bson.M{c.Field: bson.M{"$in": c.Value}}
	case "contains", "regex":
		return bson.M{c.Field: primitive.Regex{Pattern: fmt.Sprintf("%v", c.Value), Options: "i"}}
	default:
		return bson.M{c.Field: c.Value}
	}
}

// predicate intersects the caller's base constraint with the plan's
// disjunction. The plan's clauses are OR-combined among themselves,
// then ANDed with the base.
func predicate(base bson.M, plan query.Plan) bson.M {
	if len(plan.Or) == 0 {
		if base == nil {
			return bson.M{}
		}
		return base
	}
	or := make(bson.A, 0, len(plan.Or))
	for _, c := range plan.Or {
		or = append(or, clausePredicate(c))
	}
	if base == nil {
		return bson.M{"$or": or}
	}
	if _, clash := base["$or"]; clash {
		return bson.M{"$and": bson.A{base, bson.M{"$or": or}}}
	}
	merged := bson.M{"$or": or}
	for k, v := range base {
		merged[k] = v
	}
	return merged
}

// execute runs a compiled plan against one collection. The total count
// reflects the same predicate with skip and limit ignored, computed as
// a separate count because callers display total pages.
func execute(ctx context.Context, coll *mongo.Collection, base bson.M, plan query.Plan, results interface{}) (int64, error) {
	filter := predicate(base, plan)

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, errors.Internal("Failed to count documents", err)
	}

	opts := options.Find()
	if plan.Skip > 0 {
		opts.SetSkip(plan.Skip)
	}
	if plan.Limit > 0 {
		opts.SetLimit(plan.Limit)
	}
	if plan.Sort != nil {
		dir := 1
		if plan.Sort.Descending {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: plan.Sort.Field, Value: dir}})
	}

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return 0, errors.Internal("Failed to query documents", err)
	}
	if err := cursor.All(ctx, results); err != nil {
		return 0, errors.Internal("Failed to decode documents", err)
	}
	return total, nil
}

// keywordPredicate builds the substring-search disjunction: every
// keyword becomes a case-insensitive regex matched against each field.
func keywordPredicate(fields []string, keywords []string) bson.M {
	regexes := make(bson.A, 0, len(keywords))
	for _, k := range keywords {
		regexes = append(regexes, primitive.Regex{Pattern: k, Options: "i"})
	}
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: bson.M{"$in": regexes}})
	}
	return bson.M{"$or": or}
}

// walletPattern matches an identity string the way the rest of the
// system compares wallets: case-insensitively.
func walletPattern(wallet string) primitive.Regex {
	return primitive.Regex{Pattern: wallet, Options: "i"}
}
