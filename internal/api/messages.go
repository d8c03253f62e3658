package api

import (
	"fmt"

	"github.com/erazemk/registro/internal/model"
)

// Messages shared by every kind.
const (
	msgMissingFields = "Todos los campos son obligatorios."
	msgInvalidID     = "El id debe ser un número válido."
	msgInvalidBody   = "El cuerpo de la solicitud no es válido."
	msgInvalidPage   = "La página debe ser un número válido."
	msgInvalidLimit  = "El límite debe ser un número válido."
	msgInvalidDate   = "La fecha debe tener el formato dd/MM/yyyy."
	msgMissingRecord = "Se debe entregar id"
	msgDateUpdated   = "Registro actualizado."
	msgDateFailed    = "Error al actualizar la fecha."
)

// messages holds the user-facing texts for one record kind.
type messages struct {
	created, createFailed                       string
	editMissing, editInactive, edited, editFail string
	deleteMissing, deleteInactive, deleted      string
	deleteFailed, listFailed                    string
}

func messagesFor(k model.Kind) messages {
	return messages{
		created:        fmt.Sprintf("%s creado con éxito.", k.Title),
		createFailed:   fmt.Sprintf("Error del servidor al crear el %s.", k.Noun),
		editMissing:    fmt.Sprintf("El %s no existe.", k.Noun),
		editInactive:   fmt.Sprintf("No se pueden editar %s inactivos.", k.Plural),
		edited:         fmt.Sprintf("%s actualizado con éxito.", k.Title),
		editFail:       fmt.Sprintf("Error en el servidor al editar un %s.", k.Noun),
		deleteMissing:  fmt.Sprintf("%s no encontrado", k.Title),
		deleteInactive: fmt.Sprintf("El %s no se encuentra activo.", k.Noun),
		deleted:        fmt.Sprintf("%s eliminado con éxito.", k.Title),
		deleteFailed:   fmt.Sprintf("Error del servidor al eliminar un %s", k.Noun),
		listFailed:     fmt.Sprintf("Error del servidor al listar los %s.", k.Plural),
	}
}
