package email

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemorySender_Records(t *testing.T) {
	s := NewMemorySender()

	msg := NewOTPMessage("a@x.com", "123456", 10)
	require.NoError(t, s.Send(context.Background(), msg))

	sent := s.Sent()
	require.Len(t, sent, 1)
	require.Equal(t, "a@x.com", sent[0].To)
	require.Equal(t, "Your login OTP", sent[0].Subject)
	require.Contains(t, sent[0].TextBody, "123456")
	require.Contains(t, sent[0].TextBody, "10 minutes")
	require.Contains(t, sent[0].HTMLBody, "<strong>123456</strong>")
}

func TestMemorySender_Err(t *testing.T) {
	s := NewMemorySender()
	s.Err = errors.New("smtp down")

	err := s.Send(context.Background(), Message{To: "a@x.com"})
	require.Error(t, err)
	require.Empty(t, s.Sent())
}
