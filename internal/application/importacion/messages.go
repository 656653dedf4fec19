package importacion

// Messages textos de cada desenlace de una importación.
type Messages struct {
	EmptySelection string
	InProgress     string
	Failure        string
	WithErrors     string
	Completed      string
	Duplicates     string
	NoChanges      string
}

var XMLMessages = Messages{
	EmptySelection: "Selecciona al menos un archivo XML.",
	InProgress:     "Importacion XML en curso. Espera a que termine.",
	Failure:        "No se pudo importar XML. Revisa el servidor.",
	WithErrors:     "Importacion XML con errores. Revisa los archivos.",
	Completed:      "Importacion XML completada.",
	Duplicates:     "Importacion XML sin nuevos registros (duplicados).",
	NoChanges:      "Importacion XML sin cambios.",
}

var PDFMessages = Messages{
	EmptySelection: "Selecciona al menos un PDF.",
	InProgress:     "Importacion PDF en curso. Espera a que termine.",
	Failure:        "No se pudo importar PDF. Revisa el servidor.",
	WithErrors:     "Importacion PDF con errores. Revisa los archivos.",
	Completed:      "Importacion PDF completada.",
	Duplicates:     "Importacion PDF sin nuevos registros (duplicados).",
	NoChanges:      "Importacion PDF sin cambios.",
}
