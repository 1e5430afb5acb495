package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hersaheli/saheli/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	exportCyclesSheet = "Cycles"
	exportLogsSheet   = "Daily logs"
)

var ErrExportFailed = errors.New("export failed")

var ExportCycleHeaders = []string{"Start date", "End date", "Length (days)", "Ongoing"}

var ExportLogHeaders = []string{
	"Date",
	"Period",
	"Mood",
	"Pain level",
	"Energy level",
	"Symptoms",
	"Notes",
}

type ExportCycleReader interface {
	ListByUser(userID uint) ([]models.Cycle, error)
}

type ExportLogReader interface {
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DailyLog, error)
}

type ExportService struct {
	cycles ExportCycleReader
	logs   ExportLogReader
}

type ExportData struct {
	Cycles [][]string
	Logs   [][]string
}

func NewExportService(cycles ExportCycleReader, logs ExportLogReader) *ExportService {
	return &ExportService{
		cycles: cycles,
		logs:   logs,
	}
}

// BuildExport collects the cycles overlapping [from, to] and the daily logs inside it.
func (service *ExportService) BuildExport(userID uint, from *time.Time, to *time.Time, today time.Time) (ExportData, error) {
	cycles, err := service.cycles.ListByUser(userID)
	if err != nil {
		return ExportData{}, fmt.Errorf("%w: %v", ErrCycleLoadFailed, err)
	}

	var toEnd *time.Time
	if to != nil {
		toEnd = dayPointer(addDays(*to, 1))
	}
	logs, err := service.logs.ListByUserRange(userID, from, toEnd)
	if err != nil {
		return ExportData{}, fmt.Errorf("%w: %v", ErrDailyLogLoadFailed, err)
	}

	periodDays := make(map[string]struct{})
	for _, day := range PeriodDays(cycles, today) {
		periodDays[FormatCalendarDay(day)] = struct{}{}
	}

	data := ExportData{
		Cycles: make([][]string, 0, len(cycles)),
		Logs:   make([][]string, 0, len(logs)),
	}
	for _, cycle := range cycles {
		end := effectiveCycleEnd(cycle, today)
		if from != nil && end.Before(CalendarDay(*from)) {
			continue
		}
		if to != nil && CalendarDay(cycle.StartDate).After(CalendarDay(*to)) {
			continue
		}
		data.Cycles = append(data.Cycles, exportCycleRow(cycle, today))
	}
	for _, entry := range logs {
		_, inPeriod := periodDays[FormatCalendarDay(entry.Date)]
		data.Logs = append(data.Logs, exportLogRow(entry, inPeriod))
	}
	return data, nil
}

func WriteExportCSV(writer io.Writer, data ExportData) error {
	csvWriter := csv.NewWriter(writer)
	if err := csvWriter.Write(ExportLogHeaders); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	if err := csvWriter.WriteAll(data.Logs); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return nil
}

func WriteExportXLSX(writer io.Writer, data ExportData) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", exportCyclesSheet); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	if _, err := file.NewSheet(exportLogsSheet); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	if err := writeExportSheet(file, exportCyclesSheet, ExportCycleHeaders, data.Cycles); err != nil {
		return err
	}
	if err := writeExportSheet(file, exportLogsSheet, ExportLogHeaders, data.Logs); err != nil {
		return err
	}

	if _, err := file.WriteTo(writer); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return nil
}

func writeExportSheet(file *excelize.File, sheet string, headers []string, rows [][]string) error {
	for column, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(column+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("%w: %v", ErrExportFailed, err)
		}
	}
	for rowIndex, row := range rows {
		for column, value := range row {
			cell, _ := excelize.CoordinatesToCellName(column+1, rowIndex+2)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("%w: %v", ErrExportFailed, err)
			}
		}
	}
	return nil
}

func exportCycleRow(cycle models.Cycle, today time.Time) []string {
	end := ""
	if cycle.EndDate != nil {
		end = FormatCalendarDay(*cycle.EndDate)
	}
	length := daysBetween(cycle.StartDate, effectiveCycleEnd(cycle, today)) + 1
	return []string{
		FormatCalendarDay(cycle.StartDate),
		end,
		strconv.Itoa(length),
		exportYesNo(cycle.IsOpen()),
	}
}

func exportLogRow(entry models.DailyLog, inPeriod bool) []string {
	names := make([]string, 0, len(entry.Symptoms))
	for _, symptom := range entry.Symptoms {
		names = append(names, symptom.Name)
	}
	sort.Strings(names)

	return []string{
		FormatCalendarDay(entry.Date),
		exportYesNo(inPeriod),
		exportOptionalString(entry.Mood),
		exportOptionalInt(entry.PainLevel),
		exportOptionalInt(entry.EnergyLevel),
		strings.Join(names, "; "),
		exportOptionalString(entry.Notes),
	}
}

func exportYesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}

func exportOptionalString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func exportOptionalInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}
