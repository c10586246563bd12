package event

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pos/pkg/domain/model"
	"testing"
)

func TestLogDispatcher(t *testing.T) {
	logger, hook := test.NewNullLogger()
	dispatcher := NewLogDispatcher(logger)
	productID := uuid.New()

	err := dispatcher.Dispatch(model.ProductDeleted{ProductID: productID})

	require.NoError(t, err)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "ProductDeleted", entry.Data["event"])
	assert.Contains(t, entry.Data["payload"], productID.String())
}
