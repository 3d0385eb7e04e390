package service

import (
	"strconv"
	"time"

	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/query"
)

const (
	EntityFeedback    = "feedback"
	EntityFeature     = "feature"
	EntityRoadmap     = "roadmap"
	EntityRoadmapItem = "roadmap-item"
	EntityIntegration = "integration"
	EntityFramework   = "framework"
	EntityMindMap     = "mindmap"
	EntityIdea        = "idea"
)

func baseSorts[T model.Record[T]]() map[string]query.Comparator[T] {
	return map[string]query.Comparator[T]{
		"id":        query.ByNumber(func(r T) model.ID { return r.GetID() }),
		"createdAt": query.ByTime(func(r T) time.Time { return r.GetCreatedAt() }),
		"updatedAt": query.ByTime(func(r T) time.Time { return r.GetUpdatedAt() }),
	}
}

func withSorts[T model.Record[T]](sorts map[string]query.Comparator[T]) map[string]query.Comparator[T] {
	all := baseSorts[T]()
	for name, cmp := range sorts {
		all[name] = cmp
	}
	return all
}

var FeedbackSchema = &query.Schema[*model.Feedback]{
	Filters: map[string]func(*model.Feedback) string{
		"category": func(f *model.Feedback) string { return f.Category },
		"status":   func(f *model.Feedback) string { return f.Status },
		"priority": func(f *model.Feedback) string { return f.Priority },
		"source":   func(f *model.Feedback) string { return f.Source },
	},
	SearchFields: []func(*model.Feedback) string{
		func(f *model.Feedback) string { return f.Title },
		func(f *model.Feedback) string { return f.Description },
		func(f *model.Feedback) string { return f.Customer },
	},
	Sorts: withSorts(map[string]query.Comparator[*model.Feedback]{
		"title":     query.ByString(func(f *model.Feedback) string { return f.Title }),
		"customer":  query.ByString(func(f *model.Feedback) string { return f.Customer }),
		"category":  query.ByString(func(f *model.Feedback) string { return f.Category }),
		"status":    query.ByString(func(f *model.Feedback) string { return f.Status }),
		"priority":  query.ByString(func(f *model.Feedback) string { return f.Priority }),
		"source":    query.ByString(func(f *model.Feedback) string { return f.Source }),
		"votes":     query.ByNumber(func(f *model.Feedback) int { return f.Votes }),
		"sentiment": query.ByNumber(func(f *model.Feedback) int { return f.Sentiment }),
	}),
}

var FeatureSchema = &query.Schema[*model.Feature]{
	Filters: map[string]func(*model.Feature) string{
		"category": func(f *model.Feature) string { return f.Category },
		"status":   func(f *model.Feature) string { return f.Status },
		"priority": func(f *model.Feature) string { return f.Priority },
		"assignee": func(f *model.Feature) string { return f.AssignedTo },
	},
	SearchFields: []func(*model.Feature) string{
		func(f *model.Feature) string { return f.Title },
		func(f *model.Feature) string { return f.Description },
	},
	Sorts: withSorts(map[string]query.Comparator[*model.Feature]{
		"title":           query.ByString(func(f *model.Feature) string { return f.Title }),
		"category":        query.ByString(func(f *model.Feature) string { return f.Category }),
		"status":          query.ByString(func(f *model.Feature) string { return f.Status }),
		"priority":        query.ByString(func(f *model.Feature) string { return f.Priority }),
		"assignedTo":      query.ByString(func(f *model.Feature) string { return f.AssignedTo }),
		"votes":           query.ByNumber(func(f *model.Feature) int { return f.Votes }),
		"impactScore":     query.ByNumber(func(f *model.Feature) int { return f.ImpactScore }),
		"effortScore":     query.ByNumber(func(f *model.Feature) int { return f.EffortScore }),
		"reachScore":      query.ByNumber(func(f *model.Feature) int { return f.ReachScore }),
		"confidenceScore": query.ByNumber(func(f *model.Feature) int { return f.ConfidenceScore }),
		"revenueImpact":   query.ByNumber(func(f *model.Feature) int64 { return f.RevenueImpact }),
		"estimatedEffort": query.ByNumber(func(f *model.Feature) int { return f.EstimatedEffort }),
		"rice":            query.ByNumber(func(f *model.Feature) int { return f.RICE() }),
	}),
}

var RoadmapSchema = &query.Schema[*model.Roadmap]{
	Filters: map[string]func(*model.Roadmap) string{
		"audienceType": func(r *model.Roadmap) string { return r.AudienceType },
		"isPublic":     func(r *model.Roadmap) string { return strconv.FormatBool(r.IsPublic) },
	},
	SearchFields: []func(*model.Roadmap) string{
		func(r *model.Roadmap) string { return r.Name },
		func(r *model.Roadmap) string { return r.Description },
	},
	Sorts: withSorts(map[string]query.Comparator[*model.Roadmap]{
		"name":      query.ByString(func(r *model.Roadmap) string { return r.Name }),
		"startDate": query.ByDate(func(r *model.Roadmap) string { return r.StartDate }),
		"endDate":   query.ByDate(func(r *model.Roadmap) string { return r.EndDate }),
		"version":   query.ByNumber(func(r *model.Roadmap) int { return r.Version }),
	}),
}

var RoadmapItemSchema = &query.Schema[*model.RoadmapItem]{
	Filters: map[string]func(*model.RoadmapItem) string{
		"roadmapId": func(i *model.RoadmapItem) string { return strconv.FormatInt(int64(i.RoadmapID), 10) },
		"featureId": func(i *model.RoadmapItem) string { return strconv.FormatInt(int64(i.FeatureID), 10) },
		"status":    func(i *model.RoadmapItem) string { return i.Status },
	},
	Sorts: withSorts(map[string]query.Comparator[*model.RoadmapItem]{
		"startDate": query.ByDate(func(i *model.RoadmapItem) string { return i.StartDate }),
		"endDate":   query.ByDate(func(i *model.RoadmapItem) string { return i.EndDate }),
		"status":    query.ByString(func(i *model.RoadmapItem) string { return i.Status }),
	}),
}

var IntegrationSchema = &query.Schema[*model.Integration]{
	Filters: map[string]func(*model.Integration) string{
		"type":     func(i *model.Integration) string { return i.Type },
		"isActive": func(i *model.Integration) string { return strconv.FormatBool(i.IsActive) },
	},
	SearchFields: []func(*model.Integration) string{
		func(i *model.Integration) string { return i.Name },
	},
	Sorts: withSorts(map[string]query.Comparator[*model.Integration]{
		"name": query.ByString(func(i *model.Integration) string { return i.Name }),
		"type": query.ByString(func(i *model.Integration) string { return i.Type }),
		"lastSyncAt": query.ByTime(func(i *model.Integration) time.Time {
			if i.LastSyncAt == nil {
				return time.Time{}
			}
			return *i.LastSyncAt
		}),
	}),
}

var FrameworkSchema = &query.Schema[*model.Framework]{
	Filters: map[string]func(*model.Framework) string{
		"isDefault": func(f *model.Framework) string { return strconv.FormatBool(f.IsDefault) },
	},
	SearchFields: []func(*model.Framework) string{
		func(f *model.Framework) string { return f.Name },
		func(f *model.Framework) string { return f.Description },
	},
	Sorts: withSorts(map[string]query.Comparator[*model.Framework]{
		"name": query.ByString(func(f *model.Framework) string { return f.Name }),
	}),
}

var MindMapSchema = &query.Schema[*model.MindMap]{
	Filters: map[string]func(*model.MindMap) string{
		"createdBy": func(m *model.MindMap) string { return m.CreatedBy },
		"isShared":  func(m *model.MindMap) string { return strconv.FormatBool(m.IsShared) },
	},
	SearchFields: []func(*model.MindMap) string{
		func(m *model.MindMap) string { return m.Name },
	},
	Sorts: withSorts(map[string]query.Comparator[*model.MindMap]{
		"name": query.ByString(func(m *model.MindMap) string { return m.Name }),
	}),
}

var IdeaSchema = &query.Schema[*model.Idea]{
	Filters: map[string]func(*model.Idea) string{
		"status": func(i *model.Idea) string { return i.Status },
	},
	SearchFields: []func(*model.Idea) string{
		func(i *model.Idea) string { return i.Title },
		func(i *model.Idea) string { return i.Description },
	},
	Sorts: withSorts(map[string]query.Comparator[*model.Idea]{
		"title":           query.ByString(func(i *model.Idea) string { return i.Title }),
		"confidenceScore": query.ByNumber(func(i *model.Idea) int { return i.ConfidenceScore }),
	}),
}
