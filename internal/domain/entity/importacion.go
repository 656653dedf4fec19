package entity

// UploadFile archivo seleccionado para importar.
type UploadFile struct {
	Name string
	Data []byte
}

// ImportCounts conteos de un lote; base de la prioridad de notificación.
type ImportCounts struct {
	Inserted   int
	Duplicates int
	Errors     int
}

// ImportXMLResult resultado de POST /importar.
type ImportXMLResult struct {
	CFDIInsertados        int `json:"cfdi_insertados"`
	CFDIDuplicados        int `json:"cfdi_duplicados"`
	RetencionesInsertadas int `json:"retenciones_insertadas"`
	RetencionesDuplicadas int `json:"retenciones_duplicadas"`
	Errores               int `json:"errores"`
}

// Counts agrega CFDI y retenciones.
func (r ImportXMLResult) Counts() ImportCounts {
	return ImportCounts{
		Inserted:   r.CFDIInsertados + r.RetencionesInsertadas,
		Duplicates: r.CFDIDuplicados + r.RetencionesDuplicadas,
		Errors:     r.Errores,
	}
}

// ImportPDFResult resultado de POST /importar_pdf.
type ImportPDFResult struct {
	Insertados int `json:"insertados"`
	Duplicados int `json:"duplicados"`
	Errores    int `json:"errores"`
}

// Counts conteos del lote PDF.
func (r ImportPDFResult) Counts() ImportCounts {
	return ImportCounts{Inserted: r.Insertados, Duplicates: r.Duplicados, Errors: r.Errores}
}

// HasStats indica si el lote produjo algún conteo que mostrar.
func (c ImportCounts) HasStats() bool {
	return c.Inserted > 0 || c.Duplicates > 0 || c.Errors > 0
}
