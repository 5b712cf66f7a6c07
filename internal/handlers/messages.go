package handlers

// Messages shown by the admin frontend.
const (
	msgSaved           = "Dados salvos com sucesso"
	msgDeleted         = "Paciente excluído com sucesso"
	msgNotFound        = "Paciente não encontrado"
	msgNoValidFields   = "Nenhum dado válido para inserir"
	msgInvalidValue    = "Valor inválido em um dos campos enviados"
	msgInvalidBody     = "Corpo da requisição deve ser um objeto JSON"
	msgInvalidID       = "ID de paciente inválido"
	msgMissingFavorite = "Falta o campo 'favorito'"
	msgInvalidFavorite = "Valor inválido para o campo 'favorito'"
	msgNothingToExport = "Não há dados para exportar"
)
