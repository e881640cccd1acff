package usecase

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ReportCodeUseCase administra la contraseña compartida del reporte. Solo se guarda el hash.
type ReportCodeUseCase struct {
	repo repository.ReportCodeRepository
}

func NewReportCodeUseCase(repo repository.ReportCodeRepository) *ReportCodeUseCase {
	return &ReportCodeUseCase{repo: repo}
}

// Set registra una nueva contraseña; la anterior deja de valer.
func (uc *ReportCodeUseCase) Set(ctx context.Context, userID string, in dto.ReportCodeRequest) (*dto.ReportCodeResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	code := &entity.ReportCode{PasswordHash: string(hash), CreatedBy: userID}
	if err := uc.repo.Create(ctx, code); err != nil {
		return nil, err
	}
	return &dto.ReportCodeResponse{IsSet: true, UpdatedAt: &code.CreatedAt, UpdatedBy: userID}, nil
}

// Current metadatos de la contraseña vigente.
func (uc *ReportCodeUseCase) Current(ctx context.Context) (*dto.ReportCodeResponse, error) {
	code, err := uc.repo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if code == nil {
		return &dto.ReportCodeResponse{IsSet: false}, nil
	}
	return &dto.ReportCodeResponse{IsSet: true, UpdatedAt: &code.CreatedAt, UpdatedBy: code.CreatedBy}, nil
}
