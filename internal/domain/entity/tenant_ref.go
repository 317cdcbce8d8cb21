package entity

// TenantRef es la referencia opcional al tenant (Company) dueño de un recurso.
// Modela como variante explícita los dos estados que un "company_id nullable"
// mezclaría: Unclaimed (contractor pre-onboarding, estimado de homeowner) y
// Claimed (pertenece a una empresa concreta). El zero value es Unclaimed.
type TenantRef struct {
	companyID string
	claimed   bool
}

// ClaimedBy construye la referencia a una empresa. Un id vacío degrada a Unclaimed.
func ClaimedBy(companyID string) TenantRef {
	if companyID == "" {
		return TenantRef{}
	}
	return TenantRef{companyID: companyID, claimed: true}
}

// Unclaimed construye la variante sin empresa.
func Unclaimed() TenantRef {
	return TenantRef{}
}

// TenantRefFromPtr convierte la columna nullable de la base de datos.
func TenantRefFromPtr(companyID *string) TenantRef {
	if companyID == nil {
		return TenantRef{}
	}
	return ClaimedBy(*companyID)
}

// CompanyID devuelve el id de la empresa y si la referencia está reclamada.
func (r TenantRef) CompanyID() (string, bool) {
	return r.companyID, r.claimed
}

// Claimed informa si el recurso pertenece a alguna empresa.
func (r TenantRef) Claimed() bool {
	return r.claimed
}

// Is informa si la referencia apunta exactamente a companyID.
// Unclaimed nunca coincide con ninguna empresa.
func (r TenantRef) Is(companyID string) bool {
	return r.claimed && companyID != "" && r.companyID == companyID
}

// OrEmpty devuelve el id o cadena vacía (claims JWT, respuestas JSON).
func (r TenantRef) OrEmpty() string {
	return r.companyID
}

// Ptr devuelve el id como puntero nullable (columna company_id).
func (r TenantRef) Ptr() *string {
	if !r.claimed {
		return nil
	}
	id := r.companyID
	return &id
}
