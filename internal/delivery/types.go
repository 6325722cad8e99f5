package delivery

// convertRequest — JSON-вариант тела. Сырой base64 в теле тоже принимаем,
// как это делал исходный конвертер.
type convertRequest struct {
	PDFURL    string `json:"pdf_url"`
	PDFBase64 string `json:"pdf_base64"`
	DPI       int    `json:"dpi"`
	Pages     string `json:"pages"`
}

type convertSuccess struct {
	Success     bool   `json:"success"`
	PageCount   int    `json:"pageCount"`
	ContentType string `json:"contentType"`
	Archive     string `json:"archive,omitempty"`
	ArchiveURL  string `json:"archiveUrl,omitempty"`
}

type convertFailure struct {
	Success   bool   `json:"success"`
	ErrorKind string `json:"errorKind"`
	Message   string `json:"message"`
}
