package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublishChart(t *testing.T) {
	requestID := uuid.New()
	payload := []byte(`{"ok":true}`)

	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != requestID.String() {
			return errors.New("unexpected key " + string(key))
		}
		if len(msg.Headers) == 0 || string(msg.Headers[0].Value) != actionNatalChart {
			return errors.New("missing action header")
		}
		return nil
	})

	p := NewProducerWith(sp, &Config{Topic: "natal_charts"}, testLogger())
	require.NoError(t, p.PublishChart(context.Background(), requestID, payload))
	require.NoError(t, p.Close())
}

func TestPublishChartFailure(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewProducerWith(sp, &Config{Topic: "natal_charts"}, testLogger())
	err := p.PublishChart(context.Background(), uuid.New(), []byte(`{}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	assert.Contains(t, err.Error(), "topic=natal_charts")
	require.NoError(t, p.Close())
}

func TestGetBrokers(t *testing.T) {
	assert.Equal(t, []string{"localhost:9092"}, (&Config{}).GetBrokers())
	assert.Equal(t, []string{"a:9092", "b:9092"}, (&Config{Brokers: "a:9092, b:9092"}).GetBrokers())
}
