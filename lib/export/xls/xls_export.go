package xlsexport

import (
	"bytes"

	requestapimodels "attendance-backend/models/api/request"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportRequestList(list []requestapimodels.RequestView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var requestHeaders = []string{"Username", "Type", "Status", "Name", "Email", "Requested Mode", "Requested At", "Resolved At", "Resolved By", "Reason"}

func (i impl) ExportRequestList(list []requestapimodels.RequestView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("xlsx file close failed")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, requestHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "xlsx header write failed")
	}
	if len(list) != 0 {
		row, err = writeRequestData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "xlsx data write failed")
		}
	}
	f.SetSheetName(sheet, "Requests")
	return f.WriteToBuffer()
}

func writeRequestData(f *excelize.File, sheet string, list []requestapimodels.RequestView, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(requestHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Username"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.SubjectUsername); err != nil {
			return row, err
		}

		// "Type"
		col++
		if err := writeColumn(f, sheet, col, row, item.KindName); err != nil {
			return row, err
		}

		// "Status"
		col++
		if err := writeColumn(f, sheet, col, row, item.StatusName); err != nil {
			return row, err
		}

		// "Name"
		col++
		if err := writeColumn(f, sheet, col, row, item.Name); err != nil {
			return row, err
		}

		// "Email"
		col++
		if err := writeColumn(f, sheet, col, row, item.Email); err != nil {
			return row, err
		}

		// "Requested Mode"
		col++
		if item.RequestedMode != "" {
			if err := writeColumn(f, sheet, col, row, item.RequestedMode.ToHuman()); err != nil {
				return row, err
			}
		}

		// "Requested At"
		col++
		if err := writeColumn(f, sheet, col, row, item.RequestedAt.Format("02.01.2006 15:04")); err != nil {
			return row, err
		}

		// "Resolved At"
		col++
		if item.ResolvedAt != nil {
			if err := writeColumn(f, sheet, col, row, item.ResolvedAt.Format("02.01.2006 15:04")); err != nil {
				return row, err
			}
		}

		// "Resolved By"
		col++
		if err := writeColumn(f, sheet, col, row, item.ResolvedBy); err != nil {
			return row, err
		}

		// "Reason"
		col++
		reason := item.Reason
		if item.RejectionReason != "" {
			reason = item.RejectionReason
		}
		if err := writeColumn(f, sheet, col, row, reason); err != nil {
			return row, err
		}
	}
	return row, nil
}
