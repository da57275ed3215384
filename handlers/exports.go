package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/daiwaprint/erp_backend/workflow"
	"github.com/gin-gonic/gin"
)

// ExportJobLedger streams the job ledger as an XLSX download.
func ExportJobLedger(c *gin.Context) {
	buf, err := workflow.ExportJobLedger(c.Request.Context())
	if err != nil {
		respondError(c, "handlers", "ExportJobLedger", err)
		return
	}

	filename := fmt.Sprintf("job-ledger-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
