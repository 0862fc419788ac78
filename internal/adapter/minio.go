package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-chama-sync/internal/config"
	"github.com/MKhiriev/go-chama-sync/internal/logger"
	"github.com/MKhiriev/go-chama-sync/models"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// User metadata stored on every document object. Listing filters on it so
// only matching objects are downloaded.
const (
	metaLastUpdated = "Last-Updated"
	metaGroupID     = "Group-Id"
)

// minioDocumentStore keeps each document as the object {collection}/{id}.json
// in one bucket.
type minioDocumentStore struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

// NewMinIODocumentStore connects to an S3-compatible endpoint and creates the
// bucket when it does not exist yet.
func NewMinIODocumentStore(ctx context.Context, cfg config.MinIO, log *logger.Logger) (DocumentStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create object client: %w", ErrInvalidAddress, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%w: object storage healthcheck failed: %w", ErrUnavailable, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("%w: create bucket %s: %w", ErrUnavailable, cfg.Bucket, err)
		}
		log.Info().Str("bucket", cfg.Bucket).Msg("created document bucket")
	}

	return &minioDocumentStore{client: client, bucket: cfg.Bucket, logger: log}, nil
}

func objectName(collection, id string) string {
	return collection + "/" + id + ".json"
}

// Set implements [DocumentStore] with a single PutObject.
func (m *minioDocumentStore) Set(ctx context.Context, collection string, doc models.Document) error {
	if err := validateDocument(collection, doc); err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	_, err = m.client.PutObject(ctx, m.bucket, objectName(collection, doc.ID),
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
			ContentType:  "application/json",
			UserMetadata: documentMetadata(doc),
		})
	if err != nil {
		m.logger.Err(err).
			Str("func", "minioDocumentStore.Set").
			Str("collection", collection).
			Str("id", doc.ID).
			Msg("failed to put document object")
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return nil
}

// Query implements [DocumentStore]. Objects are listed under the collection
// prefix with their metadata; only those whose metadata passes q (or that
// carry none) are fetched and decoded.
func (m *minioDocumentStore) Query(ctx context.Context, collection string, q models.DocumentQuery) ([]models.Document, error) {
	objects := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:       collection + "/",
		Recursive:    true,
		WithMetadata: true,
	})

	var docs []models.Document
	for obj := range objects {
		if obj.Err != nil {
			return nil, fmt.Errorf("%w: list %s: %w", ErrUnavailable, collection, obj.Err)
		}
		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}
		if !metadataMayMatch(obj.UserMetadata, q) {
			continue
		}

		doc, err := m.fetch(ctx, obj.Key)
		if err != nil {
			return nil, err
		}
		if !q.Matches(doc) {
			continue
		}
		docs = append(docs, doc)
	}

	sortDocuments(docs)
	return docs, nil
}

func (m *minioDocumentStore) fetch(ctx context.Context, key string) (models.Document, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: get %s: %w", ErrUnavailable, key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: read %s: %w", ErrUnavailable, key, err)
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.Document{}, fmt.Errorf("%w: decode %s: %w", ErrInvalidDocument, key, err)
	}
	return doc, nil
}

// Close implements [DocumentStore]. The minio client holds no resources that
// need releasing.
func (m *minioDocumentStore) Close() error {
	return nil
}

func documentMetadata(doc models.Document) map[string]string {
	meta := map[string]string{metaLastUpdated: strconv.FormatInt(doc.LastUpdated, 10)}
	if doc.GroupID != "" {
		meta[metaGroupID] = doc.GroupID
	}
	return meta
}

// metadataValue looks name up in listing metadata, which may carry the
// X-Amz-Meta- prefix and arbitrary casing depending on the server.
func metadataValue(meta map[string]string, name string) (string, bool) {
	for k, v := range meta {
		k = strings.TrimPrefix(strings.ToLower(k), "x-amz-meta-")
		if k == strings.ToLower(name) {
			return v, true
		}
	}
	return "", false
}

// metadataMayMatch reports false only when the metadata proves the object
// falls outside q.
func metadataMayMatch(meta map[string]string, q models.DocumentQuery) bool {
	raw, ok := metadataValue(meta, metaLastUpdated)
	if !ok {
		return true
	}
	lastUpdated, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return true
	}
	if lastUpdated <= q.UpdatedAfter {
		return false
	}

	if q.GroupID == "" {
		return true
	}
	group, _ := metadataValue(meta, metaGroupID)
	return group == q.GroupID
}
