package models

import "time"

// Values for the enum-typed project settings the UI binds to.
const (
	FrameworkAuto  = "Auto"
	FrameworkNext  = "Next.js"
	FrameworkReact = "React.js"
	FrameworkVue   = "Vue.js"
	FrameworkPy    = "Python"

	UILibraryNone     = "None"
	UILibraryShadcn   = "Shadcn UI"
	UILibraryNextUI   = "NextUI"
	UILibraryFlowbite = "Flowbite"

	DatabaseNone     = "None"
	DatabaseSQLite   = "SQLite"
	DatabaseSupabase = "Supabase"
	DatabaseFirebase = "Firebase"
	DatabaseMongoDB  = "MongoDB"
)

type ProjectSettings struct {
	ID        uint      `gorm:"primaryKey" json:"-"` // single-row table (ID=1)
	Framework string    `gorm:"size:32;not null" json:"framework"`
	UILibrary string    `gorm:"size:32;not null" json:"uiLibrary"`
	Database  string    `gorm:"size:32;not null" json:"database"`
	Provider  string    `gorm:"size:64" json:"llmProvider"`
	ModelKey  string    `gorm:"size:128" json:"llmModel"`
	UpdatedAt time.Time `json:"updatedAt"`
}
