package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/domain"
	apperrors "github.com/spec-kit/ticket-triage/pkg/util"
)

const cachedJSON = `{"summary":"Double charge","category":"billing","priority":"critical","sentiment_score":0.1}`

func countingClassifier(calls *int, result domain.Classification, err error) Classifier {
	return ClassifierFunc(func(context.Context, string) (domain.Classification, error) {
		*calls++
		return result, err
	})
}

func TestCachedClassifierMissStoresResult(t *testing.T) {
	db, mock := redismock.NewClientMock()
	key := CacheKey("ticket")
	expected, err := DecodeClassification(cachedJSON)
	require.NoError(t, err)

	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, cachedJSON, time.Hour).SetVal("OK")

	calls := 0
	c := NewCachedClassifier(countingClassifier(&calls, expected, nil), db, time.Hour, zap.NewNop(), nil)
	result, err := c.Classify(context.Background(), "ticket")
	require.NoError(t, err)
	assert.Equal(t, expected, result)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedClassifierHitSkipsOracle(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectGet(CacheKey("ticket")).SetVal(cachedJSON)

	calls := 0
	c := NewCachedClassifier(countingClassifier(&calls, domain.Classification{}, nil), db, time.Hour, zap.NewNop(), nil)
	result, err := c.Classify(context.Background(), "ticket")
	require.NoError(t, err)
	assert.Equal(t, "Double charge", result.Summary())
	assert.Equal(t, 0, calls)
}

func TestCachedClassifierIgnoresCacheFailures(t *testing.T) {
	db, mock := redismock.NewClientMock()
	key := CacheKey("ticket")
	expected, err := DecodeClassification(cachedJSON)
	require.NoError(t, err)

	mock.ExpectGet(key).SetErr(errors.New("connection refused"))
	mock.ExpectSet(key, cachedJSON, time.Hour).SetErr(errors.New("connection refused"))

	calls := 0
	c := NewCachedClassifier(countingClassifier(&calls, expected, nil), db, time.Hour, zap.NewNop(), nil)
	result, err := c.Classify(context.Background(), "ticket")
	require.NoError(t, err)
	assert.Equal(t, expected, result)
	assert.Equal(t, 1, calls)
}

func TestCachedClassifierDiscardsInvalidEntry(t *testing.T) {
	db, mock := redismock.NewClientMock()
	key := CacheKey("ticket")
	expected, err := DecodeClassification(cachedJSON)
	require.NoError(t, err)

	mock.ExpectGet(key).SetVal(`{"summary":"s","category":"billing","priority":"low","sentiment_score":7}`)
	mock.ExpectSet(key, cachedJSON, time.Hour).SetVal("OK")

	calls := 0
	c := NewCachedClassifier(countingClassifier(&calls, expected, nil), db, time.Hour, zap.NewNop(), nil)
	_, err = c.Classify(context.Background(), "ticket")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestCachedClassifierDoesNotCacheFailures(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectGet(CacheKey("ticket")).RedisNil()

	calls := 0
	oracleErr := apperrors.NewOracleUnavailable(errors.New("timeout"))
	c := NewCachedClassifier(countingClassifier(&calls, domain.Classification{}, oracleErr), db, time.Hour, zap.NewNop(), nil)
	_, err := c.Classify(context.Background(), "ticket")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeOracleUnavailable))
	assert.NoError(t, mock.ExpectationsWereMet())
}
