package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"supportchat/internal/chat/repository/mocks"
	"supportchat/internal/common"
	"supportchat/internal/dbmysql"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}

	return gormDB, mock, cleanup
}

func messageColumns() []string {
	return []string{"id", "recipient_id", "text", "is_from_support", "sender_id", "created_at"}
}

func TestMessageRepository_Append(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		mockSetup   func(sqlmock.Sqlmock, *mocks.MockUserRepository)
		expectError bool
	}{
		{
			name: "successful append resolves the sender view",
			text: "hello",
			mockSetup: func(mock sqlmock.Sqlmock, users *mocks.MockUserRepository) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(
					"INSERT INTO `messages` (`recipient_id`,`text`,`is_from_support`,`sender_id`,`created_at`) VALUES (?,?,?,?,?)")).
					WithArgs("42", "hello", false, uint64(42), sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
				users.EXPECT().
					ByID(gomock.Any(), uint64(42)).
					Return(&dbmysql.User{UserID: 42, Username: "alice"}, nil).
					Times(1)
			},
			expectError: false,
		},
		{
			name: "database error",
			text: "hello",
			mockSetup: func(mock sqlmock.Sqlmock, users *mocks.MockUserRepository) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(
					"INSERT INTO `messages`")).
					WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupTestDB(t)
			defer cleanup()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			users := mocks.NewMockUserRepository(ctrl)

			tt.mockSetup(mock, users)

			repo := NewMessageRepository(db, users)
			msg, err := repo.Append(context.Background(), "42", tt.text, false, 42)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, msg)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, msg)
				assert.Equal(t, "hello", msg.Text)
				require.NotNil(t, msg.Sender)
				assert.Equal(t, "alice", msg.Sender.Username)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAppendRejectsBlankText(t *testing.T) {
	repo := NewMessageRepository(nil, nil)

	for _, blank := range []string{"", "   ", "\n\t "} {
		_, err := repo.Append(context.Background(), "42", blank, false, 42)
		assert.True(t, common.IsValidation(err), "blank text must be rejected before any store access")
	}
}

func TestMessageRepository_ListByRecipient(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	users := mocks.NewMockUserRepository(ctrl)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(messageColumns()).
		AddRow(1, "42", "first", false, uint64(42), base).
		AddRow(2, "42", "second", true, uint64(1), base.Add(time.Minute)).
		AddRow(3, "42", "third", false, uint64(42), base.Add(2*time.Minute))

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `messages` WHERE recipient_id = ? ORDER BY created_at ASC, id ASC")).
		WithArgs("42").
		WillReturnRows(rows)

	// Two distinct senders; the repeated one resolves once per read.
	users.EXPECT().
		ByID(gomock.Any(), uint64(42)).
		Return(&dbmysql.User{UserID: 42, Username: "alice"}, nil).
		Times(1)
	users.EXPECT().
		ByID(gomock.Any(), uint64(1)).
		Return(&dbmysql.User{UserID: 1, Username: "agent"}, nil).
		Times(1)

	repo := NewMessageRepository(db, users)
	messages, err := repo.ListByRecipient(context.Background(), "42")

	assert.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "first", messages[0].Text)
	assert.Equal(t, "second", messages[1].Text)
	assert.Equal(t, "third", messages[2].Text)
	assert.Equal(t, "agent", messages[1].Sender.Username)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_ListConversationSummaries(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	users := mocks.NewMockUserRepository(ctrl)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	// Newest first, as the query sorts. Recipient 42 appears twice; only
	// its newest message may surface. Recipient 99 has no identity record
	// and recipient "abc" is not a numeric id: both are skipped, neither
	// blanks the inbox.
	rows := sqlmock.NewRows(messageColumns()).
		AddRow(5, "42", "newest for 42", true, uint64(1), base.Add(3*time.Minute)).
		AddRow(4, "7", "hello from bob", false, uint64(7), base.Add(2*time.Minute)).
		AddRow(3, "42", "older for 42", false, uint64(42), base.Add(time.Minute)).
		AddRow(2, "99", "orphaned conversation", false, uint64(99), base).
		AddRow(1, "abc", "legacy recipient key", false, uint64(3), base)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `messages` ORDER BY created_at DESC, id DESC")).
		WillReturnRows(rows)

	users.EXPECT().
		ByID(gomock.Any(), uint64(42)).
		Return(&dbmysql.User{UserID: 42, Username: "alice", Email: "alice@example.com"}, nil).
		Times(1)
	users.EXPECT().
		ByID(gomock.Any(), uint64(7)).
		Return(&dbmysql.User{UserID: 7, Username: "bob"}, nil).
		Times(1)
	users.EXPECT().
		ByID(gomock.Any(), uint64(99)).
		Return(nil, common.ErrNotFound).
		Times(1)

	repo := NewMessageRepository(db, users)
	summaries, err := repo.ListConversationSummaries(context.Background())

	assert.NoError(t, err)
	require.Len(t, summaries, 2, "one entry per resolvable recipient")

	assert.Equal(t, "42", summaries[0].RecipientID)
	assert.Equal(t, "alice", summaries[0].User.Username)
	assert.Equal(t, "newest for 42", summaries[0].LastMessage.Text)
	assert.True(t, summaries[0].LastMessage.IsFromSupport)
	assert.Equal(t, base.Add(3*time.Minute), summaries[0].LastMessageTime)

	assert.Equal(t, "7", summaries[1].RecipientID)
	assert.Equal(t, "bob", summaries[1].User.Username)
	assert.Equal(t, "hello from bob", summaries[1].LastMessage.Text)

	assert.True(t, summaries[0].LastMessageTime.After(summaries[1].LastMessageTime),
		"summaries list newest conversation first")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_ListConversationSummaries_QueryError(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `messages`")).
		WillReturnError(assert.AnError)

	repo := NewMessageRepository(db, mocks.NewMockUserRepository(ctrl))
	summaries, err := repo.ListConversationSummaries(context.Background())

	assert.Error(t, err)
	assert.Nil(t, summaries)
	assert.NoError(t, mock.ExpectationsWereMet())
}
