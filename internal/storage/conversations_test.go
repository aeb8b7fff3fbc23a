package storage_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subleasend/backend/internal/storage"
)

// The canonical pair ordering makes get-or-create order-independent: (5,3)
// and (3,5) resolve to the same conversation.
func TestGetOrCreateConversation_CanonicalPair(t *testing.T) {
	s := newTestStore(t)
	alice := createUser(t, s, "alice@nd.edu")
	bob := createUser(t, s, "bob@nd.edu")
	listing := createListing(t, s, newListing(alice.ID, "Scoped", "1000"))

	first, err := s.GetOrCreateConversation(bob.ID, alice.ID, &listing.ID)
	require.NoError(t, err)

	second, err := s.GetOrCreateConversation(alice.ID, bob.ID, &listing.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Less(t, first.User1ID, first.User2ID)
}

// The listing id is part of the conversation identity: the same two users get
// a separate thread per listing, plus one general thread.
func TestGetOrCreateConversation_ListingScoping(t *testing.T) {
	s := newTestStore(t)
	alice := createUser(t, s, "alice@nd.edu")
	bob := createUser(t, s, "bob@nd.edu")
	first := createListing(t, s, newListing(alice.ID, "First", "1000"))
	second := createListing(t, s, newListing(alice.ID, "Second", "1100"))

	convA, err := s.GetOrCreateConversation(alice.ID, bob.ID, &first.ID)
	require.NoError(t, err)
	convB, err := s.GetOrCreateConversation(alice.ID, bob.ID, &second.ID)
	require.NoError(t, err)
	general, err := s.GetOrCreateConversation(alice.ID, bob.ID, nil)
	require.NoError(t, err)

	assert.NotEqual(t, convA.ID, convB.ID)
	assert.NotEqual(t, convA.ID, general.ID)
	assert.Nil(t, general.ListingID)

	// Re-requesting the general thread finds the same row.
	again, err := s.GetOrCreateConversation(bob.ID, alice.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, general.ID, again.ID)
}

func TestGetOrCreateConversation_SelfRejected(t *testing.T) {
	s := newTestStore(t)
	alice := createUser(t, s, "alice@nd.edu")

	_, err := s.GetOrCreateConversation(alice.ID, alice.ID, nil)
	assert.ErrorIs(t, err, storage.ErrSelfConversation)
}

func TestSendMessage_OrderAndLastMessage(t *testing.T) {
	s := newTestStore(t)
	alice := createUser(t, s, "alice@nd.edu")
	bob := createUser(t, s, "bob@nd.edu")

	conv, err := s.GetOrCreateConversation(alice.ID, bob.ID, nil)
	require.NoError(t, err)

	_, err = s.SendMessage(conv.ID, alice.ID, "hi")
	require.NoError(t, err)
	_, err = s.SendMessage(conv.ID, alice.ID, "there")
	require.NoError(t, err)

	messages, err := s.GetMessages(conv.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "hi", messages[0].Content)
	assert.Equal(t, "there", messages[1].Content)
	assert.Equal(t, alice.Email, messages[0].Sender.Email)

	summaries, err := s.GetUserConversations(bob.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.NotNil(t, summaries[0].LastMessage)
	assert.Equal(t, "there", summaries[0].LastMessage.Content)
	assert.Equal(t, alice.Email, summaries[0].OtherUser.Email)
}

// The conversation's updated_at must track the latest persisted message so
// the inbox sorts by real activity.
func TestSendMessage_BumpsConversationRecency(t *testing.T) {
	s := newTestStore(t)
	alice := createUser(t, s, "alice@nd.edu")
	bob := createUser(t, s, "bob@nd.edu")
	carol := createUser(t, s, "carol@nd.edu")

	older, err := s.GetOrCreateConversation(alice.ID, bob.ID, nil)
	require.NoError(t, err)
	newer, err := s.GetOrCreateConversation(alice.ID, carol.ID, nil)
	require.NoError(t, err)

	_, err = s.SendMessage(newer.ID, carol.ID, "second thread")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	msg, err := s.SendMessage(older.ID, bob.ID, "bumped")
	require.NoError(t, err)

	bumped, err := s.GetConversationByID(older.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, msg.CreatedAt, bumped.UpdatedAt, time.Second)

	summaries, err := s.GetUserConversations(alice.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, older.ID, summaries[0].ID, "most recently messaged thread sorts first")
}

func TestSendMessage_Validation(t *testing.T) {
	s := newTestStore(t)
	alice := createUser(t, s, "alice@nd.edu")
	bob := createUser(t, s, "bob@nd.edu")
	mallory := createUser(t, s, "mallory@nd.edu")

	conv, err := s.GetOrCreateConversation(alice.ID, bob.ID, nil)
	require.NoError(t, err)

	_, err = s.SendMessage(conv.ID, alice.ID, "   ")
	assert.ErrorIs(t, err, storage.ErrEmptyContent)

	_, err = s.SendMessage(conv.ID, mallory.ID, "let me in")
	assert.ErrorIs(t, err, storage.ErrNotParticipant)

	_, err = s.SendMessage(999, alice.ID, "ghost thread")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

// A caller who is neither party gets NotAParticipant and no data.
func TestGetMessages_ParticipantGuard(t *testing.T) {
	s := newTestStore(t)
	alice := createUser(t, s, "alice@nd.edu")
	bob := createUser(t, s, "bob@nd.edu")
	mallory := createUser(t, s, "mallory@nd.edu")

	conv, err := s.GetOrCreateConversation(alice.ID, bob.ID, nil)
	require.NoError(t, err)
	_, err = s.SendMessage(conv.ID, alice.ID, "private")
	require.NoError(t, err)

	messages, err := s.GetMessages(conv.ID, mallory.ID)
	assert.ErrorIs(t, err, storage.ErrNotParticipant)
	assert.Nil(t, messages)
}

// Only the recipient may mark a message read; re-marking is a no-op.
func TestMarkMessageRead(t *testing.T) {
	s := newTestStore(t)
	alice := createUser(t, s, "alice@nd.edu")
	bob := createUser(t, s, "bob@nd.edu")
	mallory := createUser(t, s, "mallory@nd.edu")

	conv, err := s.GetOrCreateConversation(alice.ID, bob.ID, nil)
	require.NoError(t, err)
	msg, err := s.SendMessage(conv.ID, alice.ID, "read me")
	require.NoError(t, err)

	// The sender cannot mark their own message read.
	err = s.MarkMessageRead(msg.ID, alice.ID)
	assert.ErrorIs(t, err, storage.ErrNotRecipient)

	// Outsiders cannot touch it at all.
	err = s.MarkMessageRead(msg.ID, mallory.ID)
	assert.ErrorIs(t, err, storage.ErrNotParticipant)

	require.NoError(t, s.MarkMessageRead(msg.ID, bob.ID))

	messages, err := s.GetMessages(conv.ID, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, messages[0].ReadAt)
	readAt := *messages[0].ReadAt

	// Marking again succeeds without changing the timestamp.
	require.NoError(t, s.MarkMessageRead(msg.ID, bob.ID))
	messages, err = s.GetMessages(conv.ID, bob.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, readAt, *messages[0].ReadAt, time.Millisecond)
}

func TestGetUserConversations_Empty(t *testing.T) {
	s := newTestStore(t)
	alice := createUser(t, s, "alice@nd.edu")

	summaries, err := s.GetUserConversations(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}
