// Package library manages saved rights guides and templates and the payment
// gating of premium templates.
//
// Saving is idempotent: saving an entry twice keeps the first bookmark. A
// template is premium when it is flagged so or carries a price. Premium
// templates are unlocked through a PaymentGateway and only then exported.
package library
