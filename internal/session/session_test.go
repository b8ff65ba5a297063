package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionIsEditable(t *testing.T) {
	s := New(1, "u1")

	assert.False(t, s.StartedAt.IsZero())
	assert.Nil(t, s.FinishedAt)
	assert.Empty(t, s.Answers())
	assert.Empty(t, s.Flags())
	assert.Empty(t, s.SubmissionPayload())
}

func TestSetAnswerOverwrites(t *testing.T) {
	s := New(1, "u1")

	require.NoError(t, s.SetAnswer(1, "x"))
	require.NoError(t, s.SetAnswer(1, "y"))
	require.NoError(t, s.SetAnswer(1, "y"))

	a, ok := s.Answer(1)
	assert.True(t, ok)
	assert.Equal(t, "y", a)
	assert.Len(t, s.Answers(), 1)
}

func TestToggleFlag(t *testing.T) {
	s := New(1, "u1")

	assert.False(t, s.Flagged(3), "unset flag reads as false")
	require.NoError(t, s.ToggleFlag(3))
	assert.True(t, s.Flagged(3))
	require.NoError(t, s.ToggleFlag(3))
	assert.False(t, s.Flagged(3))
	assert.Empty(t, s.Flags(), "cleared flags are not reported")
}

func TestFinishIsIdempotent(t *testing.T) {
	s := New(1, "u1")
	require.NoError(t, s.SetAnswer(1, "x"))

	s.Finish()
	require.NotNil(t, s.FinishedAt)
	first := *s.FinishedAt

	s.Finish()
	assert.Equal(t, first, *s.FinishedAt, "second finish keeps the original timestamp")
}

func TestMutationAfterFinishRejected(t *testing.T) {
	s := New(1, "u1")
	require.NoError(t, s.SetAnswer(1, "x"))
	s.Finish()

	assert.ErrorIs(t, s.SetAnswer(2, "y"), ErrSessionFinished)
	assert.ErrorIs(t, s.ToggleFlag(1), ErrSessionFinished)

	payload := s.SubmissionPayload()
	require.Len(t, payload, 1)
	assert.Equal(t, AnswerPayload{QuestionID: 1, Answer: "x"}, payload[0])
}

func TestSubmissionPayloadOrderedAndSparse(t *testing.T) {
	s := New(1, "u1")
	require.NoError(t, s.SetAnswer(7, "g"))
	require.NoError(t, s.SetAnswer(2, "b"))
	require.NoError(t, s.SetAnswer(5, "e"))

	payload := s.SubmissionPayload()
	require.Len(t, payload, 3)
	assert.Equal(t, []AnswerPayload{
		{QuestionID: 2, Answer: "b"},
		{QuestionID: 5, Answer: "e"},
		{QuestionID: 7, Answer: "g"},
	}, payload)
}

func TestStoreLifecycle(t *testing.T) {
	st := NewStore()

	_, ok := st.Get(1, "u1")
	assert.False(t, ok)

	s := st.GetOrCreate(1, "u1")
	same := st.GetOrCreate(1, "u1")
	assert.Same(t, s, same, "one live session per exam/user")

	other := st.GetOrCreate(1, "u2")
	assert.NotSame(t, s, other)

	require.NoError(t, s.SetAnswer(1, "x"))
	fresh := st.Reset(1, "u1")
	assert.NotSame(t, s, fresh)
	assert.Empty(t, fresh.Answers())
	assert.Nil(t, fresh.FinishedAt)

	st.Remove(1, "u1")
	_, ok = st.Get(1, "u1")
	assert.False(t, ok)
}
