// file: internals/features/papers/paper/service/paper_service.go
package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"paperhub_backend/internals/constants"
	model "paperhub_backend/internals/features/papers/paper/model"
)

var ErrPaperNotFound = errors.New("paper not found")

// Every lifecycle mutation below commits the paper change and its matching
// upload_log row in one transaction, so the audit trail cannot drift from
// the catalog state.

// CreateUploaded persists a freshly uploaded paper (pending moderation)
// together with its success log row.
func CreateUploaded(db *gorm.DB, paper *model.PaperModel) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(paper).Error; err != nil {
			return err
		}
		return tx.Create(&model.UploadLogModel{
			UserID:             paper.UploadedBy,
			PaperID:            &paper.ID,
			CloudinaryPublicID: paper.CloudinaryPublicID,
			Action:             constants.ActionUpload,
			Status:             constants.StatusSuccess,
		}).Error
	})
}

// LogFailedUpload records a storage-collaborator failure. There is no paper
// row in that case, so PaperID stays null.
func LogFailedUpload(db *gorm.DB, userID uint, publicID string, cause error) error {
	msg := cause.Error()
	return db.Create(&model.UploadLogModel{
		UserID:             userID,
		CloudinaryPublicID: publicID,
		Action:             constants.ActionUpload,
		Status:             constants.StatusFailed,
		ErrorMessage:       &msg,
	}).Error
}

// Approve moves the paper into the approved state. Permitted from any state;
// re-approval after rejection and approval reversal are both legal.
func Approve(db *gorm.DB, paperID, adminID uint) (*model.PaperModel, error) {
	var paper model.PaperModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&paper, "id = ? AND is_active = ?", paperID, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaperNotFound
			}
			return err
		}

		paper.MarkApproved(adminID, time.Now())
		// Save skips nil pointers on partial updates; select the lifecycle
		// columns so clearing rejection_reason reaches the database.
		if err := tx.Model(&paper).
			Select("is_approved", "approval_date", "approved_by", "rejection_reason").
			Updates(map[string]interface{}{
				"is_approved":      paper.IsApproved,
				"approval_date":    paper.ApprovalDate,
				"approved_by":      paper.ApprovedBy,
				"rejection_reason": nil,
			}).Error; err != nil {
			return err
		}

		return tx.Create(&model.UploadLogModel{
			UserID:             adminID,
			PaperID:            &paper.ID,
			CloudinaryPublicID: paper.CloudinaryPublicID,
			Action:             constants.ActionApprove,
			Status:             constants.StatusSuccess,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

// Reject moves the paper into the rejected state with the given reason.
func Reject(db *gorm.DB, paperID, adminID uint, reason string) (*model.PaperModel, error) {
	var paper model.PaperModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&paper, "id = ? AND is_active = ?", paperID, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaperNotFound
			}
			return err
		}

		paper.MarkRejected(adminID, reason)
		if err := tx.Model(&paper).
			Select("is_approved", "approval_date", "approved_by", "rejection_reason").
			Updates(map[string]interface{}{
				"is_approved":      false,
				"approval_date":    nil,
				"approved_by":      paper.ApprovedBy,
				"rejection_reason": paper.RejectionReason,
			}).Error; err != nil {
			return err
		}

		return tx.Create(&model.UploadLogModel{
			UserID:             adminID,
			PaperID:            &paper.ID,
			CloudinaryPublicID: paper.CloudinaryPublicID,
			Action:             constants.ActionReject,
			Status:             constants.StatusSuccess,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

// SoftDelete marks the paper inactive. destroyErr, when non-nil, is the
// outcome of the best-effort storage destroy and lands in the log row; the
// soft delete commits either way.
func SoftDelete(db *gorm.DB, paperID, actorID uint, destroyErr error) (*model.PaperModel, error) {
	var paper model.PaperModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&paper, "id = ? AND is_active = ?", paperID, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaperNotFound
			}
			return err
		}

		if err := tx.Model(&paper).Update("is_active", false).Error; err != nil {
			return err
		}
		paper.IsActive = false

		logRow := model.UploadLogModel{
			UserID:             actorID,
			PaperID:            &paper.ID,
			CloudinaryPublicID: paper.CloudinaryPublicID,
			Action:             constants.ActionDelete,
			Status:             constants.StatusSuccess,
		}
		if destroyErr != nil {
			msg := destroyErr.Error()
			logRow.ErrorMessage = &msg
		}
		return tx.Create(&logRow).Error
	})
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

// IncrementDownloadCount bumps the counter atomically at the storage layer
// (single UPDATE, no read-modify-write) and returns the paper.
func IncrementDownloadCount(db *gorm.DB, paperID uint) (*model.PaperModel, error) {
	res := db.Model(&model.PaperModel{}).
		Where("id = ? AND is_active = ? AND is_approved = ?", paperID, true, true).
		UpdateColumn("download_count", gorm.Expr("download_count + 1"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrPaperNotFound
	}

	var paper model.PaperModel
	if err := db.First(&paper, "id = ?", paperID).Error; err != nil {
		return nil, err
	}
	return &paper, nil
}

/* =========================
   Upload-log queries
   ========================= */

type LogFilter struct {
	UserID  *uint
	PaperID *uint
	Action  string
}

// ListUploadLogs returns audit rows matching the filter, newest first.
func ListUploadLogs(db *gorm.DB, f LogFilter, limit, offset int) ([]model.UploadLogModel, int64, error) {
	tx := db.Model(&model.UploadLogModel{})
	if f.UserID != nil {
		tx = tx.Where("user_id = ?", *f.UserID)
	}
	if f.PaperID != nil {
		tx = tx.Where("paper_id = ?", *f.PaperID)
	}
	if f.Action != "" {
		tx = tx.Where("action = ?", f.Action)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.UploadLogModel
	if err := tx.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
