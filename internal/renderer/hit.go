package renderer

// Area identifies the screen element under a point.
type Area uint8

const (
	AreaNone Area = iota
	// AreaHeader is a column title.
	AreaHeader
	// AreaRow is a drawn record row.
	AreaRow
	// AreaBlank is body space below the last row.
	AreaBlank
	AreaVTrack
	AreaVThumb
	AreaHTrack
	AreaHThumb
	AreaStatus
)

// String returns the area name.
func (a Area) String() string {
	switch a {
	case AreaHeader:
		return "header"
	case AreaRow:
		return "row"
	case AreaBlank:
		return "blank"
	case AreaVTrack:
		return "vtrack"
	case AreaVThumb:
		return "vthumb"
	case AreaHTrack:
		return "htrack"
	case AreaHThumb:
		return "hthumb"
	case AreaStatus:
		return "status"
	default:
		return "none"
	}
}

// Hit is the result of a hit test.
type Hit struct {
	Area Area

	// Row is the window row for AreaRow.
	Row int

	// Property is the column under the point for AreaHeader and AreaRow.
	Property string

	// TrackPos is the cell offset along the scrollbar track and TrackLen
	// its length, for the scrollbar areas.
	TrackPos int
	TrackLen int

	// Before is true on a track when the point lies before the thumb.
	Before bool
}

// HitTest reports what was drawn at (x, y) by the last Draw.
func (r *Renderer) HitTest(x, y int) Hit {
	reg := r.regions
	switch {
	case reg.Header.Contains(x, y):
		return Hit{Area: AreaHeader, Property: r.columnAt(x - reg.Header.X + r.geometry.PanCells)}

	case reg.Body.Contains(x, y):
		row := y - reg.Body.Y
		if row >= r.rows {
			return Hit{Area: AreaBlank}
		}
		return Hit{Area: AreaRow, Row: row, Property: r.columnAt(x - reg.Body.X + r.geometry.PanCells)}

	case reg.VTrack.Contains(x, y):
		p := y - reg.VTrack.Y
		pos, length := thumbSpan(reg.VTrack.H, r.geometry.ThumbSize, r.geometry.ThumbTop)
		return trackHit(AreaVTrack, AreaVThumb, p, reg.VTrack.H, pos, length)

	case reg.HTrack.Contains(x, y):
		p := x - reg.HTrack.X
		pos, length := thumbSpan(reg.HTrack.W, r.geometry.HThumbSize, r.geometry.HThumbLeft)
		return trackHit(AreaHTrack, AreaHThumb, p, reg.HTrack.W, pos, length)

	case reg.Status.Contains(x, y):
		return Hit{Area: AreaStatus}
	}
	return Hit{}
}

func trackHit(track, thumb Area, p, trackLen, pos, length int) Hit {
	h := Hit{Area: track, TrackPos: p, TrackLen: trackLen}
	if p >= pos && p < pos+length {
		h.Area = thumb
	} else {
		h.Before = p < pos
	}
	return h
}

// columnAt returns the property whose cells cover content column cx.
// Separators belong to the column on their left.
func (r *Renderer) columnAt(cx int) string {
	for _, c := range r.columns {
		if cx >= c.X && cx <= c.X+c.Width {
			return c.Property
		}
	}
	return ""
}
