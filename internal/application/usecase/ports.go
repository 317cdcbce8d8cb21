package usecase

import "github.com/fieldserve/fieldserve-api/internal/domain/entity"

// EstimatePDFGenerator genera el resumen PDF de un estimado para el técnico
// en campo. La implementación (Maroto) vive en infrastructure.
type EstimatePDFGenerator interface {
	GenerateEstimatePDF(
		estimate *entity.Estimate,
		company *entity.Company,
		handoff *entity.Handoff, // nil si el estimado no está transferido
		override *entity.PricingOverride, // nil si no hay precio sobreescrito
	) ([]byte, error)
}
