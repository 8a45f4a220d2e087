package models

type SlipPDFData struct {
	Station      *StationSetup // weighbridge identity for the header
	Bill         *Bill
	Contacts     string // formatted phone numbers
	Date         string // formatted bill date
	TimeIn       string // first weighing time
	TimeOut      string // second weighing time, "-" for single-trip bills
	Gross        string // formatted weights, "-" when unresolved
	Tare         string
	Net          string
	NetWords     string // net weight in words for the slip body
	ChargesWords string // weighing charges in words
	CopyTitle    string
}
