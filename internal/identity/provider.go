// Package identity é o provedor de contas do painel: credenciais, perfis e
// sessões JWT. Os handlers dependem apenas das interfaces daqui.
package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/autoimport-crm/internal/httperr"
	"github.com/BruksfildServices01/autoimport-crm/internal/models"
	"github.com/BruksfildServices01/autoimport-crm/internal/validators"
)

const MinPasswordLength = 6

var (
	ErrInvalidCredentials = httperr.ErrBusiness("invalid_credentials")
	ErrInvalidEmail       = httperr.ErrBusiness("invalid_email")
	ErrWeakPassword       = httperr.ErrBusiness("weak_password")
	ErrEmailTaken         = httperr.ErrBusiness("email_already_registered")
	ErrAccountNotFound    = httperr.ErrBusiness("account_not_found")
)

type NewAccount struct {
	Email    string
	Password string
	FullName string
}

type Provider interface {
	CreateAccount(ctx context.Context, in NewAccount) (*models.Profile, error)
	SignIn(ctx context.Context, email, password string) (*models.Account, error)
	ChangePassword(ctx context.Context, userID, current, next string) error
	DeleteAccount(ctx context.Context, userID string) error
}

// LocalProvider guarda contas na própria base, com senha em bcrypt.
type LocalProvider struct {
	db   *gorm.DB
	cost int
}

func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{db: db, cost: bcrypt.DefaultCost}
}

// CreateAccount cria conta e perfil com o mesmo id na mesma transação.
func (p *LocalProvider) CreateAccount(ctx context.Context, in NewAccount) (*models.Profile, error) {
	email := validators.NormalizeEmail(in.Email)
	if !validators.IsEmailFormatValid(email) {
		return nil, ErrInvalidEmail
	}
	if len(in.Password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), p.cost)
	if err != nil {
		return nil, err
	}

	account := models.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hashed),
	}
	profile := models.Profile{
		ID:       account.ID,
		FullName: strings.TrimSpace(in.FullName),
	}

	err = p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Account{}).
			Where("email = ?", email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}

		if err := tx.Create(&account).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				return ErrEmailTaken
			}
			return err
		}
		return tx.Save(&profile).Error
	})
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*models.Account, error) {
	var account models.Account
	if err := p.db.WithContext(ctx).
		Where("email = ?", validators.NormalizeEmail(email)).
		First(&account).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &account, nil
}

func (p *LocalProvider) ChangePassword(ctx context.Context, userID, current, next string) error {
	if len(next) < MinPasswordLength {
		return ErrWeakPassword
	}

	var account models.Account
	if err := p.db.WithContext(ctx).First(&account, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(next), p.cost)
	if err != nil {
		return err
	}

	return p.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", userID).
		Update("password_hash", string(hashed)).Error
}

// DeleteAccount remove conta e perfil. Leads atribuídos ficam sem responsável;
// no histórico de audit o vínculo vira o nome do autor em actor_name, para a
// ação não parecer pública.
func (p *LocalProvider) DeleteAccount(ctx context.Context, userID string) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", userID).Delete(&models.Account{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAccountNotFound
		}

		var profile models.Profile
		if err := tx.Where("id = ?", userID).Limit(1).Find(&profile).Error; err != nil {
			return err
		}
		actor := profile.FullName
		if actor == "" {
			actor = "Deleted user"
		}

		if err := tx.Model(&models.Submission{}).
			Where("assigned_user_id = ?", userID).
			Update("assigned_user_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.AuditLog{}).
			Where("user_id = ?", userID).
			Updates(map[string]any{
				"actor_name": actor,
				"user_id":    nil,
			}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", userID).Delete(&models.Profile{}).Error
	})
}

// Compile-time check
var _ Provider = (*LocalProvider)(nil)
