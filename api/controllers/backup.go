package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/bahzadkaka/mv-marketplace/api/responses"
	backupsvc "github.com/bahzadkaka/mv-marketplace/internal/backup"
	pkgerrors "github.com/bahzadkaka/mv-marketplace/pkg/errors"
	"github.com/bahzadkaka/mv-marketplace/pkg/logger"
)

// AdminExportBackup streams the full dataset as a downloadable JSON file.
func AdminExportBackup(svc backupsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := svc.Export(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="backup-db.json"`)
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(snapshot); err != nil {
			logg.Error(r.Context(), "backup.encode", err)
		}
	}
}

// AdminImportBackup replaces the full dataset with an uploaded snapshot.
// The snapshot arrives either as a multipart "file" part or as the raw
// request body.
func AdminImportBackup(svc backupsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := r.Body
		if err := r.ParseMultipartForm(multipartMemoryLimit); err == nil {
			file, _, err := r.FormFile("file")
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "backup file missing"))
				return
			}
			defer file.Close()
			body = file
		}

		var snapshot backupsvc.Snapshot
		if err := json.NewDecoder(body).Decode(&snapshot); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid backup"))
			return
		}

		if err := svc.Import(r.Context(), &snapshot); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"ok": true})
	}
}
