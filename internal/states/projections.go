package states

import (
	"github.com/hyperengineering/statefacts/internal/types"
)

func (s *Service) lookup(code string) (types.StateReference, error) {
	ref, ok := s.refs.Lookup(code)
	if !ok {
		return types.StateReference{}, notFoundError("Invalid state abbreviation parameter")
	}
	return ref, nil
}

// Capital projects the state's capital city.
func (s *Service) Capital(code string) (*types.CapitalResponse, error) {
	ref, err := s.lookup(code)
	if err != nil {
		return nil, err
	}
	return &types.CapitalResponse{State: ref.Name, Capital: ref.Capital}, nil
}

// Nickname projects the state's nickname.
func (s *Service) Nickname(code string) (*types.NicknameResponse, error) {
	ref, err := s.lookup(code)
	if err != nil {
		return nil, err
	}
	return &types.NicknameResponse{State: ref.Name, Nickname: ref.Nickname}, nil
}

// Population projects the state's population with US thousands separators.
func (s *Service) Population(code string) (*types.PopulationResponse, error) {
	ref, err := s.lookup(code)
	if err != nil {
		return nil, err
	}
	return &types.PopulationResponse{
		State:      ref.Name,
		Population: s.printer.Sprintf("%d", ref.Population),
	}, nil
}

// Admission projects the state's admission date.
func (s *Service) Admission(code string) (*types.AdmissionResponse, error) {
	ref, err := s.lookup(code)
	if err != nil {
		return nil, err
	}
	return &types.AdmissionResponse{State: ref.Name, Admitted: ref.AdmissionDate}, nil
}
