// Package mongostore is a reference Storage implementation backed by
// MongoDB, storing each resource as a document in a single collection
// keyed by (tenant_id, resource_type, id).
package mongostore

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/scimcore/storage"
)

// Store is a MongoDB-backed Storage.
type Store struct {
	coll *mongo.Collection
}

// New wraps an existing collection. Callers typically obtain it via
// client.Database(name).Collection("scim_resources").
func New(coll *mongo.Collection) *Store {
	return &Store{coll: coll}
}

var _ storage.Storage = (*Store)(nil)

type wrapper struct {
	TenantID     string         `bson:"tenantId"`
	ResourceType string         `bson:"resourceType"`
	ID           string         `bson:"resourceId"`
	Doc          map[string]any `bson:"doc"`
}

func filterFor(tenantID, resourceType, id string) bson.M {
	return bson.M{"tenantId": tenantID, "resourceType": resourceType, "resourceId": id}
}

func (s *Store) Put(ctx context.Context, tenantID, resourceType, id string, doc map[string]any) error {
	filter := filterFor(tenantID, resourceType, id)
	update := bson.M{"$set": wrapper{TenantID: tenantID, ResourceType: resourceType, ID: id, Doc: doc}}
	_, err := s.coll.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	return err
}

func (s *Store) Get(ctx context.Context, tenantID, resourceType, id string) (map[string]any, bool, error) {
	var w wrapper
	err := s.coll.FindOne(ctx, filterFor(tenantID, resourceType, id)).Decode(&w)
	if err == mongo.ErrNoDocuments {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return w.Doc, true, nil
}

func (s *Store) Delete(ctx context.Context, tenantID, resourceType, id string) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, filterFor(tenantID, resourceType, id))
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (s *Store) List(ctx context.Context, tenantID, resourceType string, query storage.Query) ([]map[string]any, int, error) {
	filter := bson.M{"tenantId": tenantID, "resourceType": resourceType}
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var all []wrapper
	if err := cursor.All(ctx, &all); err != nil {
		return nil, 0, err
	}
	docs := make([]map[string]any, 0, len(all))
	for _, w := range all {
		docs = append(docs, w.Doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return idOf(docs[i]) < idOf(docs[j])
	})

	total := len(docs)
	start := query.StartIndex
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	count := query.Count
	if count <= 0 {
		count = total - start
	}
	end := start + count
	if end > total {
		end = total
	}
	return docs[start:end], total, nil
}

func (s *Store) FindByAttributeValue(ctx context.Context, tenantID, resourceType, path, value string) (map[string]any, bool, error) {
	var w wrapper
	filter := bson.M{"tenantId": tenantID, "resourceType": resourceType, "doc." + path: value}
	err := s.coll.FindOne(ctx, filter).Decode(&w)
	if err == mongo.ErrNoDocuments {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return w.Doc, true, nil
}

func (s *Store) Exists(ctx context.Context, tenantID, resourceType, id string) (bool, error) {
	count, err := s.coll.CountDocuments(ctx, filterFor(tenantID, resourceType, id))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func idOf(doc map[string]any) string {
	if v, ok := doc["id"].(string); ok {
		return v
	}
	return ""
}
