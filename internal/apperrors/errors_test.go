package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/forexdesk/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppError_IsInternal(t *testing.T) {
	dbErr := apperrors.NewAppError(http.StatusInternalServerError, "database error", errors.New("conn reset"))
	wrapped := fmt.Errorf("loading balance: %w", dbErr)

	assert.ErrorIs(t, wrapped, apperrors.ErrInternal)
	assert.Equal(t, "loading balance: database error: conn reset", wrapped.Error())

	clientErr := apperrors.NewAppError(http.StatusNotFound, "missing", nil)
	assert.NotErrorIs(t, clientErr, apperrors.ErrInternal)
	assert.Equal(t, "missing", clientErr.Error())
}

func TestSentinels_Taxonomy(t *testing.T) {
	for _, err := range []error{
		apperrors.ErrInsufficientBalance,
		apperrors.ErrDeskClaimed,
		apperrors.ErrDestinationNotReconciled,
		apperrors.ErrRepeatedLine,
		apperrors.ErrNotReconciled,
		apperrors.ErrInvalidState,
	} {
		assert.ErrorIs(t, err, apperrors.ErrConflict, err.Error())
	}
	for _, err := range []error{
		apperrors.ErrIdenticalCurrencies,
		apperrors.ErrCrossConversion,
		apperrors.ErrNoDenominations,
		apperrors.ErrInvalidAmount,
		apperrors.ErrRoundingChoiceRequired,
	} {
		assert.ErrorIs(t, err, apperrors.ErrValidation, err.Error())
	}
}
