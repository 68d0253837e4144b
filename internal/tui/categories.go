package tui

// Category is one entry of the configuration menu
type Category struct {
	ID          string
	Name        string
	Description string
}

var Categories = []Category{
	{ID: "scanner", Name: "Scanner", Description: "Python interpreter and scan timeout"},
	{ID: "fetch", Name: "Fetch", Description: "Default branch, scratch path and downloads"},
	{ID: "pushbullet", Name: "Pushbullet", Description: "API key, device name and report directory"},
	{ID: "history", Name: "History", Description: "Scan history storage and retention"},
	{ID: "report", Name: "Report", Description: "Report format and severity thresholds"},
	{ID: "logging", Name: "Logging", Description: "Log level and format"},
}

func GetCategoryByID(id string) *Category {
	for i := range Categories {
		if Categories[i].ID == id {
			return &Categories[i]
		}
	}
	return nil
}

func GetCategoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = c.Name
	}
	return names
}
