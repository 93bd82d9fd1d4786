package goCred

import "time"

// SecurityReport summarises the effective credential posture of a Toolkit.
type SecurityReport struct {
	PasswordCost      int
	UpgradeOnCompare  bool
	SigningAlgorithm  string
	AllowedAlgorithms []string
	TokenLifetime     time.Duration
	Leeway            time.Duration
	MaxFutureIAT      time.Duration
	RequireExpiry     bool
	IssuerPinned      bool
	AudiencePinned    bool
	UnwrapPayload     bool
	Workers           int
	AuditEnabled      bool
	AuditDropIfFull   bool
	MetricsEnabled    bool
}

// SecurityReport returns the effective configuration as enforced by this Toolkit.
func (t *Toolkit) SecurityReport() SecurityReport {
	if t == nil {
		return SecurityReport{}
	}

	allowed := make([]string, 0, len(t.verifyOpts.Algorithms))
	for _, a := range t.verifyOpts.Algorithms {
		allowed = append(allowed, string(a))
	}

	return SecurityReport{
		PasswordCost:      t.hasher.Cost(),
		UpgradeOnCompare:  t.config.Password.UpgradeOnCompare,
		SigningAlgorithm:  string(algorithmOrDefault(t.signOpts.Algorithm)),
		AllowedAlgorithms: allowed,
		TokenLifetime:     t.signOpts.ExpiresIn,
		Leeway:            t.verifyOpts.Leeway,
		MaxFutureIAT:      t.verifyOpts.MaxFutureIAT,
		RequireExpiry:     t.verifyOpts.RequireExpiry,
		IssuerPinned:      t.verifyOpts.Issuer != "",
		AudiencePinned:    t.verifyOpts.Audience != "",
		UnwrapPayload:     t.verifyOpts.UnwrapPayload,
		Workers:           t.pool.Size(),
		AuditEnabled:      t.audit != nil,
		AuditDropIfFull:   t.audit != nil && t.config.Audit.DropIfFull,
		MetricsEnabled:    t.metrics.Enabled(),
	}
}
