package preset

import "github.com/ritzau/taskboard/pkg/model"

var builtin = []model.Preset{
	{
		ID:    "gamedev",
		Label: "Game Development",
		Categories: []model.Category{
			{Name: "Art", Color: "#ec4899"},
			{Name: "Programming", Color: "#3b82f6"},
			{Name: "Design", Color: "#a855f7"},
			{Name: "Audio", Color: "#f59e0b"},
			{Name: "QA", Color: "#10b981"},
		},
	},
	{
		ID:    "software",
		Label: "Software",
		Categories: []model.Category{
			{Name: "Frontend", Color: "#06b6d4"},
			{Name: "Backend", Color: "#6366f1"},
			{Name: "DevOps", Color: "#f97316"},
			{Name: "Design", Color: "#a855f7"},
			{Name: "QA", Color: "#10b981"},
		},
	},
	{
		ID:    "marketing",
		Label: "Marketing",
		Categories: []model.Category{
			{Name: "Content", Color: "#eab308"},
			{Name: "Social", Color: "#ef4444"},
			{Name: "SEO", Color: "#22c55e"},
			{Name: "Events", Color: "#8b5cf6"},
		},
	},
}
