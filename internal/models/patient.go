package models

// Table is the relational table holding intake records.
const Table = "pacientes"

// Column names. They are part of the wire contract with the admin frontend.
const (
	ColID                   = "id"
	ColTimestamp            = "timestamp"
	ColName                 = "nome"
	ColAddress              = "endereco"
	ColChiefComplaint       = "queixa_principal"
	ColProblemDuration      = "tempo_problema"
	ColPainIntensity        = "intensidade_dor"
	ColPainType             = "tipo_dor"
	ColAggravatingRelieving = "piora_alivia"
	ColPriorProblem         = "problema_anterior"
	ColPriorRelief          = "alivio_anterior"
	ColMedicalConditions    = "condicoes_medicas"
	ColTakesMedication      = "medicamentos"
	ColMedications          = "quais_medicamentos"
	ColOccupation           = "ocupacao"
	ColFixedPostures        = "posturas_fixas"
	ColPhysicalActivity     = "atividade_fisica"
	ColActivityKind         = "qual_atividade"
	ColNumbness             = "dormencia"
	ColNumbnessLocation     = "local_dormencia"
	ColNotes                = "observacoes"
	ColPreferredDate        = "data_preferencial"
	ColSchedulingNotes      = "observacoes_agendamento"
	ColFavorite             = "favorito"
)

// TimestampLayout is the layout of the timestamp column.
const TimestampLayout = "2006-01-02 15:04:05"

// PatientRecord is one submitted intake form.
type PatientRecord struct {
	ID                   uint    `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Timestamp            *string `json:"timestamp" gorm:"column:timestamp"`
	Name                 *string `json:"nome" gorm:"column:nome"`
	Address              *string `json:"endereco" gorm:"column:endereco"`
	ChiefComplaint       *string `json:"queixa_principal" gorm:"column:queixa_principal"`
	ProblemDuration      *string `json:"tempo_problema" gorm:"column:tempo_problema"`
	PainIntensity        *string `json:"intensidade_dor" gorm:"column:intensidade_dor"`
	PainType             *string `json:"tipo_dor" gorm:"column:tipo_dor"`
	AggravatingRelieving *string `json:"piora_alivia" gorm:"column:piora_alivia"`
	PriorProblem         *string `json:"problema_anterior" gorm:"column:problema_anterior"`
	PriorRelief          *string `json:"alivio_anterior" gorm:"column:alivio_anterior"`
	MedicalConditions    *string `json:"condicoes_medicas" gorm:"column:condicoes_medicas"`
	TakesMedication      *string `json:"medicamentos" gorm:"column:medicamentos"`
	Medications          *string `json:"quais_medicamentos" gorm:"column:quais_medicamentos"`
	Occupation           *string `json:"ocupacao" gorm:"column:ocupacao"`
	FixedPostures        *string `json:"posturas_fixas" gorm:"column:posturas_fixas"`
	PhysicalActivity     *string `json:"atividade_fisica" gorm:"column:atividade_fisica"`
	ActivityKind         *string `json:"qual_atividade" gorm:"column:qual_atividade"`
	Numbness             *string `json:"dormencia" gorm:"column:dormencia"`
	NumbnessLocation     *string `json:"local_dormencia" gorm:"column:local_dormencia"`
	Notes                *string `json:"observacoes" gorm:"column:observacoes"`
	PreferredDate        *string `json:"data_preferencial" gorm:"column:data_preferencial"`
	SchedulingNotes      *string `json:"observacoes_agendamento" gorm:"column:observacoes_agendamento"`
	Favorite             int     `json:"favorito" gorm:"column:favorito;default:0"`
}

func (PatientRecord) TableName() string {
	return Table
}

// PatientSummary is the projection used by the admin list.
type PatientSummary struct {
	ID             uint    `json:"id" gorm:"column:id"`
	Name           *string `json:"nome" gorm:"column:nome"`
	Timestamp      *string `json:"timestamp" gorm:"column:timestamp"`
	ChiefComplaint *string `json:"queixa_principal" gorm:"column:queixa_principal"`
	Favorite       int     `json:"favorito" gorm:"column:favorito"`
}

// SummaryColumns are the columns of PatientSummary, in response order.
var SummaryColumns = []string{ColID, ColName, ColTimestamp, ColChiefComplaint, ColFavorite}

// textColumns maps every free-text column to its field, in table order.
var textColumns = []struct {
	name  string
	field func(p *PatientRecord) **string
}{
	{ColTimestamp, func(p *PatientRecord) **string { return &p.Timestamp }},
	{ColName, func(p *PatientRecord) **string { return &p.Name }},
	{ColAddress, func(p *PatientRecord) **string { return &p.Address }},
	{ColChiefComplaint, func(p *PatientRecord) **string { return &p.ChiefComplaint }},
	{ColProblemDuration, func(p *PatientRecord) **string { return &p.ProblemDuration }},
	{ColPainIntensity, func(p *PatientRecord) **string { return &p.PainIntensity }},
	{ColPainType, func(p *PatientRecord) **string { return &p.PainType }},
	{ColAggravatingRelieving, func(p *PatientRecord) **string { return &p.AggravatingRelieving }},
	{ColPriorProblem, func(p *PatientRecord) **string { return &p.PriorProblem }},
	{ColPriorRelief, func(p *PatientRecord) **string { return &p.PriorRelief }},
	{ColMedicalConditions, func(p *PatientRecord) **string { return &p.MedicalConditions }},
	{ColTakesMedication, func(p *PatientRecord) **string { return &p.TakesMedication }},
	{ColMedications, func(p *PatientRecord) **string { return &p.Medications }},
	{ColOccupation, func(p *PatientRecord) **string { return &p.Occupation }},
	{ColFixedPostures, func(p *PatientRecord) **string { return &p.FixedPostures }},
	{ColPhysicalActivity, func(p *PatientRecord) **string { return &p.PhysicalActivity }},
	{ColActivityKind, func(p *PatientRecord) **string { return &p.ActivityKind }},
	{ColNumbness, func(p *PatientRecord) **string { return &p.Numbness }},
	{ColNumbnessLocation, func(p *PatientRecord) **string { return &p.NumbnessLocation }},
	{ColNotes, func(p *PatientRecord) **string { return &p.Notes }},
	{ColPreferredDate, func(p *PatientRecord) **string { return &p.PreferredDate }},
	{ColSchedulingNotes, func(p *PatientRecord) **string { return &p.SchedulingNotes }},
}

// Columns returns every column the record type knows about, in table order.
func Columns() []string {
	cols := make([]string, 0, len(textColumns)+2)
	cols = append(cols, ColID)
	for _, c := range textColumns {
		cols = append(cols, c.name)
	}
	return append(cols, ColFavorite)
}

// Value renders one column as text, with ok=false for NULL.
func (p *PatientRecord) Value(column string) (string, bool) {
	switch column {
	case ColID:
		return uintToString(p.ID), true
	case ColFavorite:
		return intToString(p.Favorite), true
	}
	for _, c := range textColumns {
		if c.name == column {
			v := *c.field(p)
			if v == nil {
				return "", false
			}
			return *v, true
		}
	}
	return "", false
}
