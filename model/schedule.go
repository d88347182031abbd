package model

import "time"

// Schedule là suất chiếu đã chọn, bất biến sau khi tải về.
// DayType suy ra từ ShowTime để tra bảng giá.
type Schedule struct {
	ID         uint      `json:"id"`
	FilmID     uint      `json:"filmId"`
	FilmTitle  string    `json:"filmTitle"`
	StudioName string    `json:"studioName"`
	ShowTime   time.Time `json:"showTime"`
	BasePrice  float64   `json:"basePrice"`
}

// PriceRow là một dòng bảng giá từ server: loại ngày → đơn giá cơ bản
type PriceRow struct {
	DayType string  `json:"dayType"`
	Price   float64 `json:"price"`
}
