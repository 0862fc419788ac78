package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-chama-sync/internal/config"
	"github.com/MKhiriev/go-chama-sync/internal/logger"
	"github.com/MKhiriev/go-chama-sync/models"
	"github.com/redis/go-redis/v9"
)

// redisDocumentStore keeps every document as a JSON string under
// doc:{collection}:{id} and indexes ids by lastUpdated in two sorted sets:
// idx:{collection} and idx:{collection}:group:{groupId}.
type redisDocumentStore struct {
	client redis.UniversalClient
	logger *logger.Logger
}

// NewRedisDocumentStore connects to Redis and verifies the connection.
func NewRedisDocumentStore(ctx context.Context, cfg config.Redis, log *logger.Logger) (DocumentStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: redis ping: %w", ErrUnavailable, err)
	}

	return newRedisDocumentStore(client, log), nil
}

func newRedisDocumentStore(client redis.UniversalClient, log *logger.Logger) *redisDocumentStore {
	return &redisDocumentStore{client: client, logger: log}
}

func docKey(collection, id string) string {
	return "doc:" + collection + ":" + id
}

func indexKey(collection string) string {
	return "idx:" + collection
}

func groupIndexKey(collection, groupID string) string {
	return "idx:" + collection + ":group:" + groupID
}

// Set implements [DocumentStore]. The document and both index entries are
// written in one MULTI/EXEC; a document that moved groups leaves its old
// group index.
func (r *redisDocumentStore) Set(ctx context.Context, collection string, doc models.Document) error {
	if err := validateDocument(collection, doc); err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	previousGroup, err := r.storedGroup(ctx, collection, doc.ID)
	if err != nil {
		return err
	}

	score := float64(doc.LastUpdated)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, docKey(collection, doc.ID), data, 0)
		pipe.ZAdd(ctx, indexKey(collection), redis.Z{Score: score, Member: doc.ID})
		if previousGroup != "" && previousGroup != doc.GroupID {
			pipe.ZRem(ctx, groupIndexKey(collection, previousGroup), doc.ID)
		}
		if doc.GroupID != "" {
			pipe.ZAdd(ctx, groupIndexKey(collection, doc.GroupID), redis.Z{Score: score, Member: doc.ID})
		}
		return nil
	})
	if err != nil {
		r.logger.Err(err).
			Str("func", "redisDocumentStore.Set").
			Str("collection", collection).
			Str("id", doc.ID).
			Msg("failed to write document")
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return nil
}

func (r *redisDocumentStore) storedGroup(ctx context.Context, collection, id string) (string, error) {
	raw, err := r.client.Get(ctx, docKey(collection, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	var stored models.Document
	if err := json.Unmarshal(raw, &stored); err != nil {
		// a corrupt value is overwritten by the caller
		return "", nil
	}
	return stored.GroupID, nil
}

// Query implements [DocumentStore] with ZRANGEBYSCORE (after +inf followed by
// one MGET.
func (r *redisDocumentStore) Query(ctx context.Context, collection string, q models.DocumentQuery) ([]models.Document, error) {
	key := indexKey(collection)
	if q.GroupID != "" {
		key = groupIndexKey(collection, q.GroupID)
	}

	ids, err := r.client.ZRangeByScore(ctx, key, &redis.ZRangeBy{
		Min: "(" + strconv.FormatInt(q.UpdatedAfter, 10),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: range %s: %w", ErrUnavailable, key, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = docKey(collection, id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: fetch documents: %w", ErrUnavailable, err)
	}

	docs := make([]models.Document, 0, len(values))
	for i, raw := range values {
		s, ok := raw.(string)
		if !ok || s == "" {
			continue
		}

		var doc models.Document
		if err := json.Unmarshal([]byte(s), &doc); err != nil {
			r.logger.Warn().Err(err).
				Str("func", "redisDocumentStore.Query").
				Str("collection", collection).
				Str("id", ids[i]).
				Msg("failed to decode stored document")
			continue
		}
		// stale index entry
		if !q.Matches(doc) {
			continue
		}
		docs = append(docs, doc)
	}

	sortDocuments(docs)
	return docs, nil
}

// Close implements [DocumentStore].
func (r *redisDocumentStore) Close() error {
	return r.client.Close()
}
