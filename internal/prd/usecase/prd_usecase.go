package usecase

import (
	"context"
	"strings"
	"time"

	prddomain "genprd-backend/internal/prd/domain"
	prddto "genprd-backend/internal/prd/dto"
	"genprd-backend/internal/prd/repository"
	"genprd-backend/pkg/apperror"
	"genprd-backend/pkg/llm"
	"genprd-backend/pkg/logger"
	"genprd-backend/pkg/pdf"
)

const recentLimit = 5

type prdUsecase struct {
	prdRepo   repository.PRDRepository
	personnel PersonnelResolver
	users     UserResolver
	generator Generator
	exporter  Exporter
}

func NewPRDUsecase(
	prdRepo repository.PRDRepository,
	personnel PersonnelResolver,
	users UserResolver,
	generator Generator,
	exporter Exporter,
) PRDUsecase {
	return &prdUsecase{
		prdRepo:   prdRepo,
		personnel: personnel,
		users:     users,
		generator: generator,
		exporter:  exporter,
	}
}

func (u *prdUsecase) List(userID string, filter *prddto.ListPRDFilter) ([]*prddomain.PRD, error) {
	stage := ""
	if filter != nil {
		stage = filter.Stage
	}
	return u.prdRepo.FindAllByUser(userID, stage)
}

func (u *prdUsecase) Get(userID, id string) (*prddomain.PRD, error) {
	prd, err := u.prdRepo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}
	// Stamps feed the "recently viewed" list; a failed stamp is not worth
	// failing the read.
	now := time.Now()
	if err := u.prdRepo.TouchLastViewed(prd.ID, now); err != nil {
		logger.Log.WithError(err).Warn("failed to stamp last_viewed_at")
	} else {
		prd.LastViewedAt = &now
	}
	return prd, nil
}

func (u *prdUsecase) Recent(userID string) ([]*prddomain.PRD, error) {
	return u.prdRepo.FindRecent(userID, recentLimit)
}

func (u *prdUsecase) Create(ctx context.Context, userID string, req *prddto.CreatePRDRequest) (*prddomain.PRD, error) {
	prd := &prddomain.PRD{
		UserID:            userID,
		ProductName:       req.ProductName,
		DocumentVersion:   req.DocumentVersion,
		DocumentStage:     prddomain.StageDraft,
		ProjectOverview:   req.ProjectOverview,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		Deadline:          req.Deadline,
		DocumentOwners:    req.DocumentOwners,
		Developers:        req.Developers,
		Stakeholders:      req.Stakeholders,
		GeneratedSections: req.GeneratedSections,
		Timeline:          req.Timeline,
	}
	if prd.DocumentVersion == "" {
		prd.DocumentVersion = "1.0"
	}
	if req.DarciRoles != nil {
		prd.DarciRoles = prddomain.JSONMap{}
		for role, members := range req.DarciRoles {
			prd.DarciRoles[role] = members
		}
	}

	if req.Generate {
		if err := u.generate(ctx, userID, req, prd); err != nil {
			return nil, err
		}
	}

	if err := u.prdRepo.Create(prd); err != nil {
		return nil, err
	}
	return prd, nil
}

// generate resolves personnel ids to names, calls the generation service and
// reshapes its response into the document's JSON columns.
func (u *prdUsecase) generate(ctx context.Context, userID string, req *prddto.CreatePRDRequest, prd *prddomain.PRD) error {
	allIDs := append(append(append([]string{}, req.DocumentOwners...), req.Developers...), req.Stakeholders...)
	for _, members := range req.DarciRoles {
		allIDs = append(allIDs, members...)
	}

	names, err := u.personnel.FindNamesByIDs(userID, allIDs)
	if err != nil {
		return err
	}

	resolve := func(ids []string) []string {
		out := make([]string, 0, len(ids))
		for _, id := range ids {
			if name, ok := names[id]; ok {
				out = append(out, name)
			} else {
				// Tolerate entries that are already names.
				out = append(out, id)
			}
		}
		return out
	}

	darciByName := map[string][]string{}
	for role, members := range req.DarciRoles {
		darciByName[role] = resolve(members)
	}

	generated, err := u.generator.GeneratePRD(ctx, &llm.GenerateRequest{
		DocumentVersion: prd.DocumentVersion,
		ProductName:     req.ProductName,
		DocumentOwners:  resolve(req.DocumentOwners),
		Developers:      resolve(req.Developers),
		Stakeholders:    resolve(req.Stakeholders),
		ProjectOverview: req.ProjectOverview,
		DarciRoles:      darciByName,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
	})
	if err != nil {
		return err
	}

	prd.DocumentOwners = resolve(req.DocumentOwners)
	prd.Developers = resolve(req.Developers)
	prd.Stakeholders = resolve(req.Stakeholders)
	prd.GeneratedSections = reshapeSections(generated)
	prd.Timeline = reshapeTimeline(generated)
	prd.DarciRoles = reshapeDarci(generated, darciByName)
	return nil
}

// reshapeSections normalizes the service's section list into the shape the
// frontend and the PDF template consume.
func reshapeSections(generated *llm.GenerateResponse) prddomain.JSONMap {
	var problemStatements, objectives []interface{}
	var otherSections []interface{}
	for _, section := range generated.Overview.Sections {
		title := strings.ToLower(section.Title)
		switch {
		case strings.Contains(title, "problem statement"):
			problemStatements = append(problemStatements, section.Content)
		case strings.Contains(title, "objective"):
			objectives = append(objectives, section.Content)
		default:
			otherSections = append(otherSections, map[string]interface{}{
				"title":   section.Title,
				"content": section.Content,
			})
		}
	}

	metrics := make([]interface{}, 0, len(generated.SuccessMetrics.Metrics))
	for _, m := range generated.SuccessMetrics.Metrics {
		metrics = append(metrics, map[string]interface{}{
			"name":       m.Name,
			"definition": m.Definition,
			"current":    m.Current,
			"target":     m.Target,
		})
	}

	stories := make([]interface{}, 0, len(generated.UserStories.Stories))
	for _, s := range generated.UserStories.Stories {
		stories = append(stories, map[string]interface{}{
			"title":               s.Title,
			"user_story":          s.UserStory,
			"acceptance_criteria": s.AcceptanceCriteria,
			"priority":            s.Priority,
		})
	}

	return prddomain.JSONMap{
		"problem_statements": problemStatements,
		"objectives":         objectives,
		"sections":           otherSections,
		"success_metrics":    metrics,
		"user_stories":       stories,
	}
}

func reshapeTimeline(generated *llm.GenerateResponse) prddomain.JSONMap {
	phases := make([]interface{}, 0, len(generated.ProjectTimeline.Phases))
	for _, p := range generated.ProjectTimeline.Phases {
		phases = append(phases, map[string]interface{}{
			"time_period": p.TimePeriod,
			"activity":    p.Activity,
			"pic":         p.PIC,
		})
	}
	return prddomain.JSONMap{"phases": phases}
}

func reshapeDarci(generated *llm.GenerateResponse, membersByRole map[string][]string) prddomain.JSONMap {
	guidelines := map[string]string{}
	for _, role := range generated.Darci.Roles {
		guidelines[role.Name] = role.Guidelines
	}

	out := prddomain.JSONMap{}
	for role, members := range membersByRole {
		out[role] = map[string]interface{}{
			"members":    members,
			"guidelines": guidelines[role],
		}
	}
	return out
}

func (u *prdUsecase) Update(userID, id string, req *prddto.UpdatePRDRequest) (*prddomain.PRD, error) {
	prd, err := u.prdRepo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}

	if req.ProductName != nil {
		prd.ProductName = *req.ProductName
	}
	if req.DocumentVersion != nil {
		prd.DocumentVersion = *req.DocumentVersion
	}
	if req.DocumentStage != nil {
		if !prddomain.ValidStage(*req.DocumentStage) {
			return nil, apperror.ErrValidation
		}
		prd.DocumentStage = *req.DocumentStage
	}
	if req.ProjectOverview != nil {
		prd.ProjectOverview = *req.ProjectOverview
	}
	if req.StartDate != nil {
		prd.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		prd.EndDate = *req.EndDate
	}
	if req.Deadline != nil {
		prd.Deadline = req.Deadline
		prd.ReminderSent = false
	}
	if req.DocumentOwners != nil {
		prd.DocumentOwners = *req.DocumentOwners
	}
	if req.Developers != nil {
		prd.Developers = *req.Developers
	}
	if req.Stakeholders != nil {
		prd.Stakeholders = *req.Stakeholders
	}
	if req.DarciRoles != nil {
		prd.DarciRoles = *req.DarciRoles
	}
	if req.GeneratedSections != nil {
		prd.GeneratedSections = *req.GeneratedSections
	}
	if req.Timeline != nil {
		prd.Timeline = *req.Timeline
	}

	if err := u.prdRepo.Update(prd); err != nil {
		return nil, err
	}
	return prd, nil
}

func (u *prdUsecase) Delete(userID, id string) error {
	return u.prdRepo.Delete(userID, id)
}

func (u *prdUsecase) Archive(userID, id string) (*prddomain.PRD, error) {
	return u.UpdateStage(userID, id, prddomain.StageArchived)
}

func (u *prdUsecase) TogglePin(userID, id string) (*prddomain.PRD, error) {
	prd, err := u.prdRepo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}
	prd.IsPinned = !prd.IsPinned
	if err := u.prdRepo.Update(prd); err != nil {
		return nil, err
	}
	return prd, nil
}

func (u *prdUsecase) UpdateStage(userID, id string, stage prddomain.DocumentStage) (*prddomain.PRD, error) {
	if !prddomain.ValidStage(stage) {
		return nil, apperror.ErrValidation
	}
	prd, err := u.prdRepo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}
	prd.DocumentStage = stage
	if err := u.prdRepo.Update(prd); err != nil {
		return nil, err
	}
	return prd, nil
}

func (u *prdUsecase) Download(ctx context.Context, userID, id string) (string, error) {
	prd, err := u.prdRepo.FindByID(userID, id)
	if err != nil {
		return "", err
	}

	// First export moves a draft into circulation.
	if prd.DocumentStage == prddomain.StageDraft {
		prd.DocumentStage = prddomain.StageInProgress
		if err := u.prdRepo.Update(prd); err != nil {
			return "", err
		}
	}

	owner, err := u.users.FindUserByID(prd.UserID)
	if err != nil {
		return "", err
	}

	return u.exporter.Generate(ctx, &pdf.Document{
		ID:              prd.ID,
		ProductName:     prd.ProductName,
		DocumentVersion: prd.DocumentVersion,
		DocumentStage:   string(prd.DocumentStage),
		ProjectOverview: prd.ProjectOverview,
		OwnerName:       owner.Name,
		CreatedDate:     prd.CreatedAt.Format("January 2, 2006"),
		StartDate:       prd.StartDate,
		EndDate:         prd.EndDate,
		DocumentOwners:  prd.DocumentOwners,
		Developers:      prd.Developers,
		Stakeholders:    prd.Stakeholders,
		DarciRoles:      prd.DarciRoles,
		Sections:        prd.GeneratedSections,
		Timeline:        prd.Timeline,
	})
}
