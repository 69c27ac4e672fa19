package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boardsync/internal/app/service"
	"boardsync/internal/core/domain"
)

const testDebounce = 30 * time.Millisecond

func newSession(channel *channelFake) *service.ChatSession {
	return service.NewChatSession(channel, "self", testDebounce, 5*time.Second)
}

func TestChatSession_JoinLeavesPreviousRoom(t *testing.T) {
	channel := &channelFake{}
	session := newSession(channel)

	require.NoError(t, session.Join("t1", "g1"))
	require.NoError(t, session.Join("t2", "g1"))

	require.Equal(t, []string{"t1", "t2"}, channel.joinedTodos)
	require.Equal(t, []string{"t1"}, channel.leftTodos)
	require.Equal(t, "t2", session.ActiveTodo())
}

func TestChatSession_SendMessage_BlankIsNoOp(t *testing.T) {
	channel := &channelFake{}
	session := newSession(channel)
	require.NoError(t, session.Join("t1", "g1"))

	err := session.SendMessage("   \t ")

	require.ErrorIs(t, err, domain.ErrBlankMessage)
	require.Empty(t, channel.chatMessages())
}

func TestChatSession_SendMessage_DoesNotAppendLocally(t *testing.T) {
	channel := &channelFake{}
	session := newSession(channel)
	require.NoError(t, session.Join("t1", "g1"))

	require.NoError(t, session.SendMessage("hello"))

	// The message shows up only once its echo arrives.
	require.Equal(t, []string{"hello"}, channel.chatMessages())
	require.Empty(t, session.Messages())

	session.ApplyChat(domain.ChatMessage{ID: "m1", TodoID: "t1", Content: "hello"})
	require.Len(t, session.Messages(), 1)
}

func TestChatSession_ApplyChat_IgnoresOtherRooms(t *testing.T) {
	channel := &channelFake{}
	session := newSession(channel)
	require.NoError(t, session.Join("t1", "g1"))

	require.False(t, session.ApplyChat(domain.ChatMessage{ID: "m1", TodoID: "t2", Content: "elsewhere"}))
	require.Empty(t, session.Messages())
}

func TestChatSession_TypingDebounce(t *testing.T) {
	channel := &channelFake{}
	session := newSession(channel)
	require.NoError(t, session.Join("t1", "g1"))

	// Three keystrokes in quick succession followed by quiescence emit
	// exactly one start and one stop.
	session.StartTyping()
	time.Sleep(5 * time.Millisecond)
	session.StartTyping()
	time.Sleep(5 * time.Millisecond)
	session.StartTyping()

	time.Sleep(testDebounce + 50*time.Millisecond)

	require.Equal(t, []bool{true, false}, channel.typingEvents())
}

func TestChatSession_StopTypingFlushesImmediately(t *testing.T) {
	channel := &channelFake{}
	session := newSession(channel)
	require.NoError(t, session.Join("t1", "g1"))

	session.StartTyping()
	session.StopTyping()

	require.Equal(t, []bool{true, false}, channel.typingEvents())

	// The cancelled timer must not fire a second stop later.
	time.Sleep(testDebounce + 50*time.Millisecond)
	require.Equal(t, []bool{true, false}, channel.typingEvents())
}

func TestChatSession_ApplyTyping_TracksPeers(t *testing.T) {
	channel := &channelFake{}
	session := newSession(channel)
	require.NoError(t, session.Join("t1", "g1"))

	session.ApplyTyping(domain.UserTyping{TodoID: "t1", UserID: "peer1", IsTyping: true})
	session.ApplyTyping(domain.UserTyping{TodoID: "t1", UserID: "peer2", IsTyping: true})
	require.ElementsMatch(t, []string{"peer1", "peer2"}, session.TypingUsers())

	session.ApplyTyping(domain.UserTyping{TodoID: "t1", UserID: "peer1", IsTyping: false})
	require.Equal(t, []string{"peer2"}, session.TypingUsers())
}

func TestChatSession_ApplyTyping_FiltersSelfAndOtherRooms(t *testing.T) {
	channel := &channelFake{}
	session := newSession(channel)
	require.NoError(t, session.Join("t1", "g1"))

	session.ApplyTyping(domain.UserTyping{TodoID: "t1", UserID: "self", IsTyping: true})
	session.ApplyTyping(domain.UserTyping{TodoID: "t9", UserID: "peer1", IsTyping: true})

	require.Empty(t, session.TypingUsers())
}

func TestChatSession_TypingEntriesExpire(t *testing.T) {
	channel := &channelFake{}
	session := service.NewChatSession(channel, "self", testDebounce, 40*time.Millisecond)
	require.NoError(t, session.Join("t1", "g1"))

	// A peer that disconnects mid-type never sends typing-stop; the entry
	// ages out on the receiver side instead.
	session.ApplyTyping(domain.UserTyping{TodoID: "t1", UserID: "peer1", IsTyping: true})
	require.Equal(t, []string{"peer1"}, session.TypingUsers())

	time.Sleep(60 * time.Millisecond)
	require.Empty(t, session.TypingUsers())
}

func TestChatSession_LeaveClearsState(t *testing.T) {
	channel := &channelFake{}
	session := newSession(channel)
	require.NoError(t, session.Join("t1", "g1"))

	session.ApplyChat(domain.ChatMessage{ID: "m1", TodoID: "t1", Content: "hi"})
	session.ApplyTyping(domain.UserTyping{TodoID: "t1", UserID: "peer1", IsTyping: true})
	session.Leave()

	require.Equal(t, "", session.ActiveTodo())
	require.Empty(t, session.Messages())
	require.Empty(t, session.TypingUsers())
	require.Equal(t, []string{"t1"}, channel.leftTodos)
}
