package v1

import (
	"github.com/shenikar/emergency_triage_system/internal/models"
	"github.com/shenikar/emergency_triage_system/internal/service"
)

// DTOToReportModel преобразует DTO приема обращения в доменную модель
func DTOToReportModel(dto SubmitReportRequest) *models.PatientReport {
	report := &models.PatientReport{
		Classification:   dto.Classification,
		PatientStatus:    dto.PatientStatus,
		Latitude:         dto.Latitude,
		Longitude:        dto.Longitude,
		PatientContact:   dto.PatientContact,
		SubmitterContact: dto.SubmitterContact,
	}
	if dto.Criticality != nil {
		c := models.CriticalityLevel(*dto.Criticality)
		report.Criticality = &c
	}
	return report
}

// ModelToReportResponse преобразует доменную модель в DTO для ответа
func ModelToReportResponse(model *models.PatientReport) *ReportResponse {
	resp := &ReportResponse{
		ID:               model.ID,
		Classification:   model.Classification,
		PatientStatus:    model.PatientStatus,
		Latitude:         model.Latitude,
		Longitude:        model.Longitude,
		PatientContact:   model.PatientContact,
		SubmitterContact: model.SubmitterContact,
		Status:           string(model.Status),
		HospitalID:       model.HospitalID,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
	if model.Criticality != nil {
		c := int(*model.Criticality)
		resp.Criticality = &c
	}
	return resp
}

// QueueViewToResponse преобразует срез очереди с временами ожидания в DTO
func QueueViewToResponse(view *service.QueueView) *QueueSnapshotResponse {
	entries := make([]*QueueEntryResponse, len(view.Snapshot.Entries))
	for i, e := range view.Snapshot.Entries {
		entries[i] = &QueueEntryResponse{
			ReportID:             e.ReportID,
			Position:             e.Position,
			Criticality:          int(e.Criticality),
			Status:               string(e.Status),
			EnteredAt:            e.EnteredAt,
			EstimatedWaitSeconds: view.Waits[e.ReportID].Seconds(),
		}
	}
	return &QueueSnapshotResponse{
		HospitalID: view.Snapshot.HospitalID,
		TakenAt:    view.Snapshot.TakenAt,
		Entries:    entries,
	}
}

// ModelToHospitalResponse преобразует больницу в DTO для ответа
func ModelToHospitalResponse(model *models.Hospital) *HospitalResponse {
	return &HospitalResponse{
		ID:            model.ID,
		Name:          model.Name,
		Region:        model.Region,
		Latitude:      model.Latitude,
		Longitude:     model.Longitude,
		MaxPatients:   model.MaxPatients,
		SpecialtyTags: model.SpecialtyTags,
	}
}

// ModelsToHospitalResponses преобразует слайс больниц в слайс DTO
func ModelsToHospitalResponses(models []*models.Hospital) []*HospitalResponse {
	responses := make([]*HospitalResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToHospitalResponse(model)
	}
	return responses
}
