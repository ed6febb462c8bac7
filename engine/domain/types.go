// Package domain defines the core data model for the Bunfree guide engine:
// the booth/item catalog payloads stored in the vector database, the Hit
// tagged union returned by retrieval, and the Response shape consumed by
// the chat client.
package domain

import "encoding/json"

// Qdrant collection names.
const (
	CollectionBooths = "booths"
	CollectionItems  = "items"
)

// Query label tokens emitted by the intent classifier. Labels are free text
// and are resolved by substring containment, never exact match; when a label
// contains several tokens the dispatch priority order decides.
const (
	LabelBoothNameSearch   = "BOOTH_NAME_SEARCH"
	LabelBoothHandleSearch = "BOOTH_HANDLE_SEARCH"
	LabelVectorSearch      = "VECTOR_SEARCH"
	LabelEventInfo         = "EVENT_INFO"
	LabelGeneralChat       = "GENERAL_CHAT"
)

// Kind discriminates the two payload shapes a Hit can carry.
type Kind string

const (
	KindBooth Kind = "booth"
	KindItem  Kind = "item"
)

// BoothItem is one catalog item as embedded in its booth's payload.
type BoothItem struct {
	ID          int    `json:"id"`
	BoothID     int    `json:"booth_id"`
	Name        string `json:"name"`
	Yomi        string `json:"yomi"`
	Genre       string `json:"genre"`
	Author      string `json:"author"`
	ItemType    string `json:"item_type"`
	PageCount   int    `json:"page_count"`
	ReleaseDate string `json:"release_date"`
	Price       int    `json:"price"`
	URL         string `json:"url"`
	PageURL     string `json:"page_url"`
	Description string `json:"description"`
}

// BoothPayload is the full booth record including its item list.
type BoothPayload struct {
	ID           int         `json:"id"`
	Name         string      `json:"name"`
	Yomi         string      `json:"yomi"`
	Category     string      `json:"category"`
	Area         string      `json:"area"`
	AreaNumber   string      `json:"area_number"`
	Members      string      `json:"members,omitempty"`
	Twitter      string      `json:"twitter,omitempty"`
	Instagram    string      `json:"instagram,omitempty"`
	WebsiteURL   string      `json:"website_url,omitempty"`
	Description  string      `json:"description"`
	MapNumber    int         `json:"map_number"`
	PositionTop  float64     `json:"position_top"`
	PositionLeft float64     `json:"position_left"`
	URL          string      `json:"url"`
	Items        []BoothItem `json:"items"`
}

// BoothRef carries a parent booth's public fields, denormalized onto an
// item payload so an item can be rendered without a second lookup.
type BoothRef struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Yomi        string `json:"yomi"`
	Category    string `json:"category"`
	Area        string `json:"area"`
	AreaNumber  string `json:"area_number"`
	MapNumber   int    `json:"map_number"`
	Members     string `json:"members,omitempty"`
	Twitter     string `json:"twitter,omitempty"`
	Instagram   string `json:"instagram,omitempty"`
	WebsiteURL  string `json:"website_url,omitempty"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// ItemPayload is the full item record from the items collection.
type ItemPayload struct {
	ID              int      `json:"id"`
	BoothID         int      `json:"booth_id"`
	Name            string   `json:"name"`
	Yomi            string   `json:"yomi"`
	Genre           string   `json:"genre"`
	Author          string   `json:"author"`
	ItemType        string   `json:"item_type"`
	PageCount       int      `json:"page_count"`
	ReleaseDate     string   `json:"release_date"`
	Price           int      `json:"price"`
	URL             string   `json:"url"`
	PageURL         string   `json:"page_url"`
	Description     string   `json:"description"`
	BoothName       string   `json:"booth_name"`
	BoothArea       string   `json:"booth_area"`
	BoothAreaNumber string   `json:"booth_area_number"`
	BoothDetails    BoothRef `json:"booth_details"`
}

// Hit is one retrieval result. Exactly one of Booth or Item is set,
// matching Kind. Hits are snapshots from the retrieval backend and are not
// modified after creation, except to fill a missing map-zone assignment.
type Hit struct {
	Kind  Kind
	ID    int
	Score float32
	Booth *BoothPayload
	Item  *ItemPayload
}

// Payload returns the active payload of the union.
func (h Hit) Payload() any {
	if h.Kind == KindBooth {
		return h.Booth
	}
	return h.Item
}

// MarshalJSON flattens the hit into the wire shape the chat client expects:
// {"type","id","score","payload"}. The fixed struct keeps key order stable,
// which also makes serialized result sets deterministic in prompts.
func (h Hit) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string  `json:"type"`
		ID      int     `json:"id"`
		Score   float32 `json:"score"`
		Payload any     `json:"payload"`
	}{string(h.Kind), h.ID, h.Score, h.Payload()})
}

// Response is what one chat turn returns to the caller. BoothResults and
// ItemResults are always non-nil, even on failure or empty retrieval.
type Response struct {
	Message      string `json:"message"`
	BoothResults []Hit  `json:"boothResults"`
	ItemResults  []Hit  `json:"itemResults"`
}

// EmptyResponse returns a Response with the given message and empty,
// non-nil result arrays.
func EmptyResponse(message string) Response {
	return Response{
		Message:      message,
		BoothResults: []Hit{},
		ItemResults:  []Hit{},
	}
}
