package controllers

import (
	"fmt"
	"net/http"

	"github.com/bahzadkaka/mv-marketplace/api/responses"
	invoicesvc "github.com/bahzadkaka/mv-marketplace/internal/invoices"
	ordersvc "github.com/bahzadkaka/mv-marketplace/internal/orders"
	"github.com/bahzadkaka/mv-marketplace/pkg/enums"
	pkgerrors "github.com/bahzadkaka/mv-marketplace/pkg/errors"
	"github.com/bahzadkaka/mv-marketplace/pkg/logger"
)

// DownloadInvoice renders the order's invoice as an inline PDF. Admins can
// fetch any order; customers only their own.
func DownloadInvoice(orders ordersvc.Service, invoices invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		role, err := actorRole(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := orders.Get(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if role != enums.RoleAdmin && order.CustomerID != actor {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
			return
		}

		invoice, err := invoices.Render(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", invoice.Filename))
		if _, err := w.Write(invoice.PDF); err != nil {
			logg.Error(r.Context(), "invoice.write", err)
		}
	}
}
