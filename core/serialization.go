package core

import (
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Serializers for stored records. Fields are written in declaration order;
// appending a field to a record requires appending it here as well.
var (
	IDMUS                = idMUS{}
	KindMUS              = kindMUS{}
	TimeMUS              = timeMUS{}
	RightsEntryMUS       = rightsEntryMUS{}
	TemplateEntryMUS     = templateEntryMUS{}
	SavedItemMUS         = savedItemMUS{}
	UnlockMUS            = unlockMUS{}
	ChecklistProgressMUS = checklistProgressMUS{}
)

var stringsMUS = ord.NewSliceSer[string](ord.String)

// unmarshalField decodes one field starting at bs[*n] and advances *n.
func unmarshalField[T any](ser mus.Serializer[T], bs []byte, n *int, dst *T) error {
	v, n1, err := ser.Unmarshal(bs[*n:])
	*n += n1
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

type skipper interface {
	Skip(bs []byte) (n int, err error)
}

// skipFields skips each field in order, stopping at the first error.
func skipFields(bs []byte, skippers ...skipper) (n int, err error) {
	for _, s := range skippers {
		var n1 int
		n1, err = s.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

type kindMUS struct{}

func (kindMUS) Marshal(v Kind, bs []byte) (n int) {
	return ord.String.Marshal(string(v), bs)
}

func (kindMUS) Unmarshal(bs []byte) (v Kind, n int, err error) {
	s, n, err := ord.String.Unmarshal(bs)
	return Kind(s), n, err
}

func (kindMUS) Size(v Kind) (size int) {
	return ord.String.Size(string(v))
}

func (kindMUS) Skip(bs []byte) (n int, err error) {
	return ord.String.Skip(bs)
}

// timeMUS stores microseconds since the Unix epoch and decodes to UTC.
type timeMUS struct{}

func (timeMUS) Marshal(v time.Time, bs []byte) (n int) {
	return varint.Int64.Marshal(v.UnixMicro(), bs)
}

func (timeMUS) Unmarshal(bs []byte) (v time.Time, n int, err error) {
	micro, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return
	}
	return time.UnixMicro(micro).UTC(), n, nil
}

func (timeMUS) Size(v time.Time) (size int) {
	return varint.Int64.Size(v.UnixMicro())
}

func (timeMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int64.Skip(bs)
}

type rightsEntryMUS struct{}

func (rightsEntryMUS) Marshal(v RightsEntry, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Summary, bs[n:])
	n += stringsMUS.Marshal(v.Tags, bs[n:])
	n += ord.String.Marshal(v.DetailedContent, bs[n:])
	n += ord.String.Marshal(v.Category, bs[n:])
	return n + ord.String.Marshal(v.ReadTime, bs[n:])
}

func (rightsEntryMUS) Unmarshal(bs []byte) (v RightsEntry, n int, err error) {
	if err = unmarshalField(IDMUS, bs, &n, &v.Id); err != nil {
		return
	}
	if err = unmarshalField(ord.String, bs, &n, &v.Title); err != nil {
		return
	}
	if err = unmarshalField(ord.String, bs, &n, &v.Summary); err != nil {
		return
	}
	if err = unmarshalField(stringsMUS, bs, &n, &v.Tags); err != nil {
		return
	}
	if err = unmarshalField(ord.String, bs, &n, &v.DetailedContent); err != nil {
		return
	}
	if err = unmarshalField(ord.String, bs, &n, &v.Category); err != nil {
		return
	}
	if err = unmarshalField(ord.String, bs, &n, &v.ReadTime); err != nil {
		return
	}
	if len(v.Tags) == 0 {
		v.Tags = nil
	}
	return
}

func (rightsEntryMUS) Size(v RightsEntry) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Summary)
	size += stringsMUS.Size(v.Tags)
	size += ord.String.Size(v.DetailedContent)
	size += ord.String.Size(v.Category)
	return size + ord.String.Size(v.ReadTime)
}

func (rightsEntryMUS) Skip(bs []byte) (n int, err error) {
	return skipFields(bs, IDMUS, ord.String, ord.String, stringsMUS, ord.String, ord.String, ord.String)
}

type templateEntryMUS struct{}

func (templateEntryMUS) Marshal(v TemplateEntry, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Category, bs[n:])
	n += ord.String.Marshal(v.Body, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	n += ord.String.Marshal(v.Preview, bs[n:])
	n += ord.String.Marshal(v.UsageInstructions, bs[n:])
	n += raw.Float64.Marshal(v.Price, bs[n:])
	return n + ord.Bool.Marshal(v.Premium, bs[n:])
}

func (templateEntryMUS) Unmarshal(bs []byte) (v TemplateEntry, n int, err error) {
	if err = unmarshalField(IDMUS, bs, &n, &v.Id); err != nil {
		return
	}
	for _, dst := range []*string{&v.Title, &v.Category, &v.Body, &v.Description, &v.Preview, &v.UsageInstructions} {
		if err = unmarshalField(ord.String, bs, &n, dst); err != nil {
			return
		}
	}
	if err = unmarshalField(raw.Float64, bs, &n, &v.Price); err != nil {
		return
	}
	err = unmarshalField(ord.Bool, bs, &n, &v.Premium)
	return
}

func (templateEntryMUS) Size(v TemplateEntry) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Category)
	size += ord.String.Size(v.Body)
	size += ord.String.Size(v.Description)
	size += ord.String.Size(v.Preview)
	size += ord.String.Size(v.UsageInstructions)
	size += raw.Float64.Size(v.Price)
	return size + ord.Bool.Size(v.Premium)
}

func (templateEntryMUS) Skip(bs []byte) (n int, err error) {
	return skipFields(bs, IDMUS, ord.String, ord.String, ord.String, ord.String,
		ord.String, ord.String, raw.Float64, ord.Bool)
}

type savedItemMUS struct{}

func (savedItemMUS) Marshal(v SavedItem, bs []byte) (n int) {
	n = KindMUS.Marshal(v.Kind, bs)
	n += IDMUS.Marshal(v.EntryId, bs[n:])
	n += ord.String.Marshal(v.Title, bs[n:])
	return n + TimeMUS.Marshal(v.SavedAt, bs[n:])
}

func (savedItemMUS) Unmarshal(bs []byte) (v SavedItem, n int, err error) {
	if err = unmarshalField(KindMUS, bs, &n, &v.Kind); err != nil {
		return
	}
	if err = unmarshalField(IDMUS, bs, &n, &v.EntryId); err != nil {
		return
	}
	if err = unmarshalField(ord.String, bs, &n, &v.Title); err != nil {
		return
	}
	err = unmarshalField(TimeMUS, bs, &n, &v.SavedAt)
	return
}

func (savedItemMUS) Size(v SavedItem) (size int) {
	size = KindMUS.Size(v.Kind)
	size += IDMUS.Size(v.EntryId)
	size += ord.String.Size(v.Title)
	return size + TimeMUS.Size(v.SavedAt)
}

func (savedItemMUS) Skip(bs []byte) (n int, err error) {
	return skipFields(bs, KindMUS, IDMUS, ord.String, TimeMUS)
}

type unlockMUS struct{}

func (unlockMUS) Marshal(v Unlock, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += IDMUS.Marshal(v.TemplateId, bs[n:])
	n += ord.String.Marshal(v.Reference, bs[n:])
	n += raw.Float64.Marshal(v.Amount, bs[n:])
	return n + TimeMUS.Marshal(v.UnlockedAt, bs[n:])
}

func (unlockMUS) Unmarshal(bs []byte) (v Unlock, n int, err error) {
	if err = unmarshalField(IDMUS, bs, &n, &v.Id); err != nil {
		return
	}
	if err = unmarshalField(IDMUS, bs, &n, &v.TemplateId); err != nil {
		return
	}
	if err = unmarshalField(ord.String, bs, &n, &v.Reference); err != nil {
		return
	}
	if err = unmarshalField(raw.Float64, bs, &n, &v.Amount); err != nil {
		return
	}
	err = unmarshalField(TimeMUS, bs, &n, &v.UnlockedAt)
	return
}

func (unlockMUS) Size(v Unlock) (size int) {
	size = IDMUS.Size(v.Id)
	size += IDMUS.Size(v.TemplateId)
	size += ord.String.Size(v.Reference)
	size += raw.Float64.Size(v.Amount)
	return size + TimeMUS.Size(v.UnlockedAt)
}

func (unlockMUS) Skip(bs []byte) (n int, err error) {
	return skipFields(bs, IDMUS, IDMUS, ord.String, raw.Float64, TimeMUS)
}

type checklistProgressMUS struct{}

func (checklistProgressMUS) Marshal(v ChecklistProgress, bs []byte) (n int) {
	n = ord.String.Marshal(v.Scenario, bs)
	n += stringsMUS.Marshal(v.CompletedSteps, bs[n:])
	n += varint.Int.Marshal(v.CurrentPhase, bs[n:])
	return n + TimeMUS.Marshal(v.UpdatedAt, bs[n:])
}

func (checklistProgressMUS) Unmarshal(bs []byte) (v ChecklistProgress, n int, err error) {
	if err = unmarshalField(ord.String, bs, &n, &v.Scenario); err != nil {
		return
	}
	if err = unmarshalField(stringsMUS, bs, &n, &v.CompletedSteps); err != nil {
		return
	}
	if err = unmarshalField(varint.Int, bs, &n, &v.CurrentPhase); err != nil {
		return
	}
	if err = unmarshalField(TimeMUS, bs, &n, &v.UpdatedAt); err != nil {
		return
	}
	if len(v.CompletedSteps) == 0 {
		v.CompletedSteps = nil
	}
	return
}

func (checklistProgressMUS) Size(v ChecklistProgress) (size int) {
	size = ord.String.Size(v.Scenario)
	size += stringsMUS.Size(v.CompletedSteps)
	size += varint.Int.Size(v.CurrentPhase)
	return size + TimeMUS.Size(v.UpdatedAt)
}

func (checklistProgressMUS) Skip(bs []byte) (n int, err error) {
	return skipFields(bs, ord.String, stringsMUS, varint.Int, TimeMUS)
}
