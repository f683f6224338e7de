package grpc

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestRecoveryInterceptor(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	intercept := recoveryInterceptor(logger)
	info := &grpc.UnaryServerInfo{FullMethod: AnalyzeLoanMethod}

	t.Run("panic becomes internal", func(t *testing.T) {
		resp, err := intercept(context.Background(), nil, info, func(context.Context, interface{}) (interface{}, error) {
			panic("schedule row out of range")
		})
		assert.Nil(t, resp)
		require.Error(t, err)
		assert.Equal(t, codes.Internal, status.Code(err))
	})

	t.Run("handler result passes through", func(t *testing.T) {
		want := errors.New("boom")
		resp, err := intercept(context.Background(), nil, info, func(context.Context, interface{}) (interface{}, error) {
			return "ok", want
		})
		assert.Equal(t, "ok", resp)
		assert.ErrorIs(t, err, want)
	})
}
