package services

import (
	"fmt"

	"github.com/footpoets/claimsdb/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Messenger writes claim notifications into the private message store.
// Recipients is the moderator list that reviews incoming claims.
type Messenger struct {
	DB         *gorm.DB
	Recipients []uint64
	Log        *zap.Logger
}

// NewMessenger creates a Messenger.
func NewMessenger(db *gorm.DB, recipients []uint64, log *zap.Logger) *Messenger {
	return &Messenger{DB: db, Recipients: recipients, Log: log}
}

func (m *Messenger) send(senderID uint64, recipients []uint64, subject, content string) error {
	return m.DB.Transaction(func(tx *gorm.DB) error {
		message := models.Message{
			ThreadID: uuid.NewString(),
			SenderID: senderID,
			Subject:  subject,
			Content:  content,
		}
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		for _, userID := range recipients {
			recipient := models.MessageRecipient{
				MessageID: message.MessageID,
				UserID:    userID,
			}
			if err := tx.Create(&recipient).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SendClaimNotice notifies the moderators that user claimed poet. The
// message carries links to both profiles so a moderator can review the
// claim from the thread.
func (m *Messenger) SendClaimNotice(user *models.User, poet *models.Poet) error {
	userLink := fmt.Sprintf("/members/%s/", user.Username)
	poetLink := fmt.Sprintf("/poets/%d/", poet.PoetID)
	editLink := fmt.Sprintf("/poets/%d/edit/", poet.PoetID)

	subject := fmt.Sprintf("%s has claimed a poet", user.DisplayName)
	content := fmt.Sprintf(
		"%s (%s) has claimed the poet %s (%s).\n\n"+
			"To see whether %s has a valid claim on this poet profile, visit the \"Edit\" page (%s), "+
			"look at the details there and accept or reject the claim. If you are not certain that "+
			"the claim is valid, use this message thread to communicate with %s to find out more.",
		user.DisplayName, userLink, poet.Title, poetLink,
		user.DisplayName, editLink, user.DisplayName)

	if err := m.send(user.UserID, m.Recipients, subject, content); err != nil {
		return err
	}

	m.Log.Info("claim notice sent",
		zap.Uint64("user_id", user.UserID),
		zap.Uint64("poet_id", poet.PoetID))
	return nil
}

// SendDecisionNotice tells the claimant whether their claim was accepted.
func (m *Messenger) SendDecisionNotice(userID uint64, poet *models.Poet, accepted bool) error {
	var subject, content string
	if accepted {
		subject = "Your poet claim was approved"
		content = fmt.Sprintf(
			"Good news! Your claim to the poet %s has been approved. The profile and its poems now belong to you.",
			poet.Title)
	} else {
		subject = "Your poet claim was declined"
		content = fmt.Sprintf(
			"Sorry, your claim to the poet %s has been declined. If you think this is a mistake, please contact a site editor.",
			poet.Title)
	}

	var senderID uint64
	if len(m.Recipients) > 0 {
		senderID = m.Recipients[0]
	}
	if err := m.send(senderID, []uint64{userID}, subject, content); err != nil {
		return err
	}

	m.Log.Info("decision notice sent",
		zap.Uint64("user_id", userID),
		zap.Uint64("poet_id", poet.PoetID),
		zap.Bool("accepted", accepted))
	return nil
}
